package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Texts 多语言文本
//
// 配置文件位置: data/texts.yaml
type Texts struct {
	DefaultLanguage string                   `yaml:"defaultLanguage"`
	Languages       map[string]LanguageTexts `yaml:"languages"`
}

// LanguageTexts 单一语言的全部文本
type LanguageTexts struct {
	Name          string              `yaml:"name"`
	TitlePrompt   string              `yaml:"titlePrompt"`
	Prompt        string              `yaml:"prompt"`
	Cutscenes     map[string][]string `yaml:"cutscenes"`
	Celebration   []string            `yaml:"celebration"`
	TimesPrompt   string              `yaml:"timesPrompt"`
	TimesTitle    string              `yaml:"timesTitle"`
	TimesPhase    string              `yaml:"timesPhase"`
	TimesTotal    string              `yaml:"timesTotal"`
	TimesImprove  string              `yaml:"timesImprove"`
	RestartPrompt string              `yaml:"restartPrompt"`
	EndLines      []string            `yaml:"endLines"`
	HUD           HUDTexts            `yaml:"hud"`
}

// HUDTexts HUD 标签
type HUDTexts struct {
	Gifts   string `yaml:"gifts"`
	Time    string `yaml:"time"`
	TimeUp  string `yaml:"timeUp"`
	Special string `yaml:"special"`
}

// LoadTexts 从磁盘加载文本文件
func LoadTexts(path string) (*Texts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texts: %w", err)
	}
	return ParseTexts(data)
}

// ParseTexts 解析并校验文本
func ParseTexts(data []byte) (*Texts, error) {
	var t Texts
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse texts: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate 默认语言必须存在
func (t *Texts) Validate() error {
	if len(t.Languages) == 0 {
		return fmt.Errorf("%w: no languages defined", ErrInvalidTuning)
	}
	if _, ok := t.Languages[t.DefaultLanguage]; !ok {
		return fmt.Errorf("%w: default language %q not defined", ErrInvalidTuning, t.DefaultLanguage)
	}
	return nil
}

// ValidateCutscenes 检查过场文字不超过行数与行宽
func (t *Texts) ValidateCutscenes(maxLines, maxLineLength int) error {
	for code, lang := range t.Languages {
		for key, lines := range lang.Cutscenes {
			if len(lines) > maxLines {
				return fmt.Errorf("%w: cutscene %s/%s has %d lines (max %d)", ErrInvalidTuning, code, key, len(lines), maxLines)
			}
			for i, line := range lines {
				if n := len([]rune(line)); n > maxLineLength {
					return fmt.Errorf("%w: cutscene %s/%s line %d has %d characters (max %d)", ErrInvalidTuning, code, key, i, n, maxLineLength)
				}
			}
		}
	}
	return nil
}

// For 返回指定语言的文本，未知语言回退到默认语言
func (t *Texts) For(code string) LanguageTexts {
	if lang, ok := t.Languages[code]; ok {
		return lang
	}
	return t.Languages[t.DefaultLanguage]
}

// Codes 按字母序返回全部语言代码
func (t *Texts) Codes() []string {
	codes := make([]string, 0, len(t.Languages))
	for code := range t.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
