package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeBasic 验证小写化、标点丢弃与空白切分
func TestNormalizeBasic(t *testing.T) {
	tokens := Normalize("Hello, World!  Go-lang 2024")
	assert.Equal(t, []string{"hello", "world", "golang", "2024"}, tokens)
}

// TestNormalizeEmptyInput 空输入返回空序列而不是错误
func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Empty(t, Normalize("   \n\t  "))
	// 纯标点同样被整体丢弃
	assert.Empty(t, Normalize("!!! ... ###"))
}

// TestNormalizeNonASCII 非ASCII字符被丢弃，不会混入token
func TestNormalizeNonASCII(t *testing.T) {
	tokens := Normalize("résumé 简历 data")
	assert.Equal(t, []string{"rsum", "data"}, tokens)
}

// TestNormalizeFiltered 停用词和单字符token被过滤
func TestNormalizeFiltered(t *testing.T) {
	tokens := NormalizeFiltered("I am a developer with skills in Go and Python")
	// "i"、"a"、"and"、"with"、"in"为停用词或单字符
	assert.Equal(t, []string{"am", "developer", "skills", "go", "python"}, tokens)
}

// TestNormalizeFilteredAllStopwords 全部被过滤时返回空序列
func TestNormalizeFilteredAllStopwords(t *testing.T) {
	assert.Empty(t, NormalizeFiltered("the a an of to"))
}

// TestIsStopword 停用词判断大小写不敏感
func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("The"))
	assert.True(t, IsStopword("and"))
	assert.False(t, IsStopword("python"))
}
