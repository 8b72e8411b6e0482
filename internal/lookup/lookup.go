// Package lookup holds the static champion and queue name tables used to
// label match data. The tables are immutable and safe for concurrent reads.
package lookup

import (
	"fmt"
	"strings"
)

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleKO Locale = "ko"
)

// ParseLocale falls back to English for anything it does not recognise.
func ParseLocale(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), string(LocaleKO)) {
		return LocaleKO
	}
	return LocaleEN
}

// Names resolves a numeric id to a display name. It never fails; unknown
// ids get a deterministic fallback.
type Names interface {
	NameFor(id int) string
}

type name struct {
	en string
	ko string
}

func (n name) in(locale Locale) string {
	if locale == LocaleKO {
		return n.ko
	}
	return n.en
}

var champions = map[int]name{
	1:   {"Annie", "애니"},
	2:   {"Olaf", "올라프"},
	3:   {"Galio", "갈리오"},
	4:   {"Twisted Fate", "트위스티드 페이트"},
	5:   {"Xin Zhao", "신 짜오"},
	10:  {"Kayle", "케일"},
	11:  {"Master Yi", "마스터 이"},
	12:  {"Alistar", "알리스타"},
	13:  {"Ryze", "라이즈"},
	14:  {"Sion", "사이온"},
	17:  {"Teemo", "티모"},
	18:  {"Tristana", "트리스타나"},
	19:  {"Warwick", "워윅"},
	20:  {"Nunu & Willump", "누누와 윌럼프"},
	21:  {"Miss Fortune", "미스 포츈"},
	22:  {"Ashe", "애쉬"},
	23:  {"Tryndamere", "트린다미어"},
	24:  {"Jax", "잭스"},
	25:  {"Morgana", "모르가나"},
	26:  {"Zilean", "질리언"},
	84:  {"Akali", "아칼리"},
	103: {"Ahri", "아리"},
	157: {"Yasuo", "야스오"},
	238: {"Zed", "제드"},
	268: {"Azir", "아지르"},
}

var queues = map[int]name{
	400: {"Normal Draft", "일반 게임"},
	420: {"Ranked Solo/Duo", "솔로랭크"},
	440: {"Ranked Flex", "자유랭크"},
	450: {"ARAM", "무작위 총력전"},
	830: {"Co-op vs. AI", "AI 상대"},
}

type Champions struct {
	locale Locale
}

func NewChampions(locale Locale) Champions {
	return Champions{locale: locale}
}

func (c Champions) NameFor(id int) string {
	if n, ok := champions[id]; ok {
		return n.in(c.locale)
	}
	if c.locale == LocaleKO {
		return fmt.Sprintf("챔피언 %d", id)
	}
	return fmt.Sprintf("Champion %d", id)
}

type Queues struct {
	locale Locale
}

func NewQueues(locale Locale) Queues {
	return Queues{locale: locale}
}

func (q Queues) NameFor(id int) string {
	if n, ok := queues[id]; ok {
		return n.in(q.locale)
	}
	if q.locale == LocaleKO {
		return "기타 게임"
	}
	return "Other Queue"
}

// Tables bundles both lookups for injection.
type Tables struct {
	Champions Names
	Queues    Names
}

func NewTables(locale Locale) Tables {
	return Tables{
		Champions: NewChampions(locale),
		Queues:    NewQueues(locale),
	}
}
