package moderation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Func 定义内容审核函数类型
// 编排层只依赖这个类型，之后可以换成更强的分类器而不动调用方
type Func func(text string) (bool, string)

// 基础关键词名单，占位性质的过滤
var bannedWords = []string{"hate", "kill", "die", "suicide"}

const (
	maxContentLength = 2000
	minContentLength = 3
)

// Moderate 对文本做基础内容审核，返回是否通过以及原因
// 检查顺序：先超长（未去空白）、再过短（去空白后）、最后关键词
// 只报告第一个命中的原因，不做累积
func Moderate(text string) (bool, string) {
	if utf8.RuneCountInString(text) > maxContentLength {
		return false, fmt.Sprintf("Content is too long (max %d characters)", maxContentLength)
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < minContentLength {
		return false, "Content is too short"
	}

	lower := strings.ToLower(text)
	for _, word := range bannedWords {
		if strings.Contains(lower, word) {
			return false, fmt.Sprintf("Content contains inappropriate language: '%s'", word)
		}
	}

	return true, "Content approved"
}
