package internal

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Verdict is the outcome of classifying one message
type Verdict struct {
	Automated bool
	Rule      *Rule // the rule that fired; nil when not automated
}

type compiledRule struct {
	rule   Rule
	phrase string
	re     *regexp.Regexp
}

// Classifier decides whether a message is an automated system notice by
// walking an ordered rule table. The first matching rule wins.
type Classifier struct {
	rules        []compiledRule
	systemSender string
	selfAliases  map[string]bool
}

// NewClassifier compiles rules. Phrases are normalized the same way
// message bodies are, so tables may be written in any case.
func NewClassifier(rules []Rule, systemSender string, selfAliases []string) (*Classifier, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	c := &Classifier{
		rules:        make([]compiledRule, 0, len(rules)),
		systemSender: NormalizeText(systemSender),
		selfAliases:  make(map[string]bool, len(selfAliases)),
	}
	for _, alias := range selfAliases {
		c.selfAliases[NormalizeText(alias)] = true
	}

	for _, r := range rules {
		cr := compiledRule{rule: r, phrase: NormalizeText(r.Phrase)}
		if r.Kind == MatchPattern {
			re, err := regexp.Compile("(?i)" + r.Phrase)
			if err != nil {
				return nil, fmt.Errorf("compile rule %s: %w", r.Name, err)
			}
			cr.re = re
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// Rules returns the rule table in evaluation order
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	for i, cr := range c.rules {
		rules[i] = cr.rule
	}
	return rules
}

// IsSystemSender reports whether sender stands for "no sender", the
// system sentinel, or the exporting user themself.
func (c *Classifier) IsSystemSender(sender string) bool {
	s := NormalizeText(sender)
	return s == "" || s == c.systemSender || c.selfAliases[s]
}

// IsAutomated reports whether the message is a system-generated notice
func (c *Classifier) IsAutomated(sender, body string) bool {
	return c.Classify(sender, body).Automated
}

// Classify evaluates the rule table against one message
func (c *Classifier) Classify(sender, body string) Verdict {
	normBody := NormalizeText(body)
	normSender := NormalizeText(sender)
	system := c.IsSystemSender(sender)

	for i := range c.rules {
		cr := &c.rules[i]
		switch cr.rule.Scope {
		case ScopeSystem:
			if !system {
				continue
			}
		case ScopeNamed:
			if system {
				continue
			}
		}
		if cr.matches(normSender, normBody) {
			rule := cr.rule
			return Verdict{Automated: true, Rule: &rule}
		}
	}
	return Verdict{}
}

func (cr *compiledRule) matches(sender, body string) bool {
	switch cr.rule.Kind {
	case MatchExact:
		return body == cr.phrase
	case MatchPrefix:
		return hasPhrasePrefix(body, cr.phrase)
	case MatchSuffix:
		return hasPhraseSuffix(body, cr.phrase)
	case MatchContains:
		return strings.Contains(body, cr.phrase)
	case MatchPattern:
		return cr.re.MatchString(body)
	case MatchPassive:
		return strings.Contains(body, cr.phrase) && strings.Contains(body, " by ")
	case MatchActorPrefix:
		rest, ok := stripActor(body, sender)
		return ok && hasPhrasePrefix(rest, cr.phrase)
	case MatchAfterName:
		return phraseAfterName(body, cr.phrase)
	}
	return false
}

// stripActor removes a leading repetition of the sender's name from body.
// Non-contact senders are shown as "~ Name" in some places and "Name" in
// others, so both forms are tried.
func stripActor(body, sender string) (string, bool) {
	candidates := []string{sender}
	if trimmed := strings.TrimSpace(strings.TrimLeft(sender, "~")); trimmed != sender {
		candidates = append(candidates, trimmed)
	}
	for _, name := range candidates {
		if name == "" || !hasPhrasePrefix(body, name) {
			continue
		}
		return strings.TrimSpace(body[len(name):]), true
	}
	return "", false
}

// phraseAfterName reports whether phrase starts at the second or third
// word of body, where the leading words are an unknown actor's name. A
// passive auxiliary is never part of the name.
func phraseAfterName(body, phrase string) bool {
	words := strings.SplitN(body, " ", 4)
	for skip := 1; skip <= 2 && skip < len(words); skip++ {
		if passiveAuxiliary[words[skip-1]] {
			break
		}
		rest := strings.Join(words[skip:], " ")
		if hasPhrasePrefix(rest, phrase) {
			return true
		}
	}
	return false
}

var passiveAuxiliary = map[string]bool{"was": true, "were": true}

// hasPhrasePrefix reports whether s starts with phrase on a word boundary
func hasPhrasePrefix(s, phrase string) bool {
	if !strings.HasPrefix(s, phrase) {
		return false
	}
	if len(s) == len(phrase) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[len(phrase):])
	return !isWordRune(r)
}

// hasPhraseSuffix reports whether s ends with phrase on a word boundary
func hasPhraseSuffix(s, phrase string) bool {
	if !strings.HasSuffix(s, phrase) {
		return false
	}
	if len(s) == len(phrase) {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:len(s)-len(phrase)])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
