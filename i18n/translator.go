package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for assertion operations.
// data carries the values interpolated into the message (for example "name",
// "min" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Message keys that are not operation tags.
const (
	KeyPatternParam   = "param.pattern"
	KeyPredicateParam = "param.predicate"
)

var english = map[string]string{
	"type":            "{name} should be of type {type}",
	"array":           "{name} should be an array",
	"buffer":          "{name} should be a buffer",
	"min":             "{name} should be greater than {min}",
	"max":             "{name} should be less than {max}",
	"range":           "{name} should be between {lower} and {upper}",
	"even":            "{name} should be even",
	"odd":             "{name} should be odd",
	"equal":           "{name} should be equal to {expected}",
	"in":              "{name} should be in {values}",
	"finite":          "{name} should be finite",
	"integer":         "{name} should be an integer",
	"float":           "{name} should be a float",
	"positive":        "{name} should be positive",
	"negative":        "{name} should be negative",
	"matches":         "{name} should match pattern {pattern}",
	"notEmpty":        "{name} should be a non empty string",
	"notWhiteSpace":   "{name} should be a non white space only string",
	"uuid":            "{name} should be a UUID",
	"hasMember":       "{name} should have member named {member}",
	"instanceOf":      "{name} should be an instance of {type}",
	"of":              "{name} should be all of type {type}",
	"contains":        "{name} should contain {element}",
	"before":          "{name} should occur before {date}",
	"after":           "{name} should occur after {date}",
	"within":          "{name} should be within {lower} and {upper}",
	"dayOf":           "{name} should occur on day {day}",
	"monthOf":         "{name} should occur on month {month}",
	"yearOf":          "{name} should occur on year {year}",
	"ok":              "{name} should not be undefined or null",
	"defined":         "{name} should not be undefined",
	"custom":          "{name} should match predicate {predicate}",
	KeyPatternParam:   "parameter pattern for {name} should be a compiled regular expression",
	KeyPredicateParam: "parameter predicate for {name} should be of type function",
}

var japanese = map[string]string{
	"type":            "{name} は {type} 型である必要があります",
	"array":           "{name} は配列である必要があります",
	"buffer":          "{name} はバッファである必要があります",
	"min":             "{name} は {min} 以上である必要があります",
	"max":             "{name} は {max} 以下である必要があります",
	"range":           "{name} は {lower} から {upper} の範囲である必要があります",
	"even":            "{name} は偶数である必要があります",
	"odd":             "{name} は奇数である必要があります",
	"equal":           "{name} は {expected} と等しい必要があります",
	"in":              "{name} は {values} のいずれかである必要があります",
	"finite":          "{name} は有限である必要があります",
	"integer":         "{name} は整数である必要があります",
	"float":           "{name} は小数である必要があります",
	"positive":        "{name} は正の数である必要があります",
	"negative":        "{name} は負の数である必要があります",
	"matches":         "{name} はパターン {pattern} に一致する必要があります",
	"notEmpty":        "{name} は空文字列であってはなりません",
	"notWhiteSpace":   "{name} は空白のみであってはなりません",
	"uuid":            "{name} は UUID である必要があります",
	"hasMember":       "{name} にはメンバー {member} が必要です",
	"instanceOf":      "{name} は {type} のインスタンスである必要があります",
	"of":              "{name} の要素はすべて {type} 型である必要があります",
	"contains":        "{name} は {element} を含む必要があります",
	"before":          "{name} は {date} より前である必要があります",
	"after":           "{name} は {date} より後である必要があります",
	"within":          "{name} は {lower} から {upper} の間である必要があります",
	"dayOf":           "{name} は {day} 日である必要があります",
	"monthOf":         "{name} は {month} 月である必要があります",
	"yearOf":          "{name} は {year} 年である必要があります",
	"ok":              "{name} は undefined または null であってはなりません",
	"defined":         "{name} は undefined であってはなりません",
	"custom":          "{name} は述語 {predicate} を満たす必要があります",
	KeyPatternParam:   "{name} のパターン引数はコンパイル済み正規表現である必要があります",
	KeyPredicateParam: "{name} の述語引数は関数である必要があります",
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := english
	if t.lang == "ja" {
		dict = japanese
	}
	tmpl, ok := dict[code]
	if !ok {
		tmpl, ok = english[code]
	}
	if !ok {
		return code
	}
	return interpolate(tmpl, data)
}

// interpolate replaces {key} placeholders with values from data. Unknown
// placeholders are left as-is.
func interpolate(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). It is safe to call while other goroutines call T.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
