package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"

	// DefaultLocale 未匹配到语言时使用
	DefaultLocale = LocaleEnUS
)

var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supportedTags)

// ResolveLocale 从 query lang 或 Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return MatchLocale(lang)
	}
	return MatchLocale(c.GetHeader("Accept-Language"))
}

// MatchLocale 将任意语言描述匹配到受支持的 locale
func MatchLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	if supportedTags[index] == language.SimplifiedChinese {
		return LocaleZhCN
	}
	return LocaleEnUS
}

// T 翻译 key，缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
