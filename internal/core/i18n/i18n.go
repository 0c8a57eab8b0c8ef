// Package i18n 通知文案的本地化（en / ar），目录内嵌在二进制里
package i18n

import (
	"embed"
	"encoding/json"
	"path"

	goi18n "github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	MsgAssigned     = "Role.Members.Assigned"
	MsgRemoved      = "Role.Members.Removed"
	MsgAssignFailed = "Role.Members.AssignFailed"
	MsgRemoveFailed = "Role.Members.RemoveFailed"
	MsgPending      = "Role.Members.Pending"
)

type Translator struct {
	bundle   *goi18n.Bundle
	fallback string
}

func New(defaultLang string) (*Translator, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		tag = language.English
	}
	b := goi18n.NewBundle(tag)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, err
		}
	}
	return &Translator{bundle: b, fallback: tag.String()}, nil
}

// Localizer acceptLanguage 形如 "ar,en;q=0.8"；匹配不上走默认语言
func (t *Translator) Localizer(acceptLanguage string) *goi18n.Localizer {
	return goi18n.NewLocalizer(t.bundle, acceptLanguage, t.fallback)
}

// Translate 找不到消息时返回 id 本身
func Translate(l *goi18n.Localizer, id string, data map[string]any) string {
	if l == nil {
		return id
	}
	s, err := l.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || s == "" {
		return id
	}
	return s
}
