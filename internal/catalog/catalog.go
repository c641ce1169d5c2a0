package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillCatalog 岗位名到技能关键词列表的静态映射
// 启动时加载一次，加载后只读，可在并发评估间安全共享
type SkillCatalog struct {
	roles map[string][]string
}

// Load 从YAML文件加载技能目录
// 文件格式为 role -> [skill, ...] 的顶层映射
func Load(path string) (*SkillCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取技能目录文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 从YAML内容解析技能目录
// 空白的技能条目在加载时即被剔除，保证匹配侧拿到的清单没有空项
func Parse(data []byte) (*SkillCatalog, error) {
	var roles map[string][]string
	if err := yaml.Unmarshal(data, &roles); err != nil {
		return nil, fmt.Errorf("解析技能目录失败: %w", err)
	}
	cleaned := make(map[string][]string, len(roles))
	for role, skills := range roles {
		cleaned[role] = dropBlankSkills(skills)
	}
	return &SkillCatalog{roles: cleaned}, nil
}

// NewFromMap 从内存映射构造技能目录，主要用于测试
// 会拷贝一份以保持目录的不可变性，空白技能条目同样被剔除
func NewFromMap(roles map[string][]string) *SkillCatalog {
	copied := make(map[string][]string, len(roles))
	for role, skills := range roles {
		copied[role] = dropBlankSkills(skills)
	}
	return &SkillCatalog{roles: copied}
}

// dropBlankSkills 去掉首尾空白并剔除空条目，总是返回新切片
func dropBlankSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// RequiredSkills 返回岗位要求的技能列表，保持目录中的顺序
// 未知岗位返回空列表，这不是错误
func (c *SkillCatalog) RequiredSkills(role string) []string {
	skills, ok := c.roles[role]
	if !ok {
		return nil
	}
	// 返回副本，避免调用方改动目录内容
	return append([]string(nil), skills...)
}

// Roles 返回目录中的岗位数量
func (c *SkillCatalog) Roles() int {
	return len(c.roles)
}
