package parser

import (
	"strings"
	"unicode"
)

// englishStopwords 固定的英文停用词表
// 同时服务于归一化过滤和TF-IDF打分，保持两处行为一致
var englishStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "been": {}, "but": {}, "by": {}, "can": {}, "for": {},
	"from": {}, "has": {}, "have": {}, "he": {}, "her": {}, "his": {},
	"i": {}, "in": {}, "is": {}, "it": {}, "its": {}, "no": {},
	"not": {}, "of": {}, "on": {}, "or": {}, "our": {}, "shall": {},
	"she": {}, "that": {}, "the": {}, "their": {}, "them": {}, "they": {},
	"this": {}, "to": {}, "was": {}, "we": {}, "were": {}, "will": {},
	"with": {}, "you": {}, "your": {},
}

// Normalize 把原始文本归一化为token序列:
// 小写化、去掉ASCII字母/数字/空白以外的字符、按空白切分
// 纯函数，空输入返回空序列而不是错误
func Normalize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
			// 其余字符一律丢弃
		}
	}
	return strings.Fields(b.String())
}

// NormalizeFiltered 在Normalize的基础上过滤停用词和长度≤1的token
func NormalizeFiltered(text string) []string {
	tokens := Normalize(text)
	filtered := tokens[:0:0]
	for _, tok := range tokens {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		filtered = append(filtered, tok)
	}
	return filtered
}

// IsStopword 判断一个token是否在停用词表中
func IsStopword(token string) bool {
	_, ok := englishStopwords[strings.ToLower(token)]
	return ok
}
