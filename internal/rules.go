package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Tier groups rules by the stage of the cascade they belong to
type Tier string

const (
	TierExact       Tier = "exact"
	TierSystemActor Tier = "system-actor"
	TierNamedActor  Tier = "named-actor"
	TierPassive     Tier = "passive"
	TierPhoneChange Tier = "phone-change"
	TierNotice      Tier = "notice"
)

// Scope restricts a rule to a class of sender
type Scope string

const (
	ScopeAny    Scope = "any"
	ScopeSystem Scope = "system" // system sentinel or a self alias
	ScopeNamed  Scope = "named"  // a specific person
)

// MatchKind selects how a rule's phrase is compared with the message body
type MatchKind string

const (
	MatchExact       MatchKind = "exact"
	MatchPrefix      MatchKind = "prefix"
	MatchSuffix      MatchKind = "suffix"
	MatchContains    MatchKind = "contains"
	MatchPattern     MatchKind = "pattern"      // phrase is a regular expression
	MatchActorPrefix MatchKind = "actor-prefix" // body repeats the sender, then the phrase
	MatchPassive     MatchKind = "passive"      // phrase plus " by " anywhere
	MatchAfterName   MatchKind = "after-name"   // phrase follows a one- or two-word name
)

// Rule is one row of the classifier's ordered rule table
type Rule struct {
	Name   string    `yaml:"name,omitempty"`
	Tier   Tier      `yaml:"tier"`
	Scope  Scope     `yaml:"scope"`
	Kind   MatchKind `yaml:"kind"`
	Phrase string    `yaml:"phrase"`
}

// RuleFile is the on-disk form of a rule table
type RuleFile struct {
	Version string `yaml:"version,omitempty"`
	Rules   []Rule `yaml:"rules"`
}

func ruleGroup(tier Tier, scope Scope, kind MatchKind, phrases ...string) []Rule {
	rules := make([]Rule, 0, len(phrases))
	for _, phrase := range phrases {
		rules = append(rules, Rule{
			Name:   fmt.Sprintf("%s/%s", tier, phrase),
			Tier:   tier,
			Scope:  scope,
			Kind:   kind,
			Phrase: phrase,
		})
	}
	return rules
}

// DefaultRules returns the built-in rule table in evaluation order
func DefaultRules() []Rule {
	var rules []Rule

	rules = append(rules, ruleGroup(TierExact, ScopeAny, MatchExact,
		"messages and calls are end-to-end encrypted.",
		"messages and calls are end-to-end encrypted. no one outside of this chat, not even whatsapp, can read or listen to them.",
		"messages and calls are end-to-end encrypted. no one outside of this chat, not even whatsapp, can read or listen to them. tap to learn more.",
		"this message was deleted",
		"this message was deleted.",
		"you deleted this message",
		"you deleted this message.",
		"this reply was deleted.",
		"missed voice call",
		"missed video call",
		"missed group voice call",
		"missed group video call",
		"started a call",
		"created the poll:",
		"poll:",
		"you created this community",
		"you created this group",
		"<media omitted>",
		"image omitted",
		"video omitted",
		"audio omitted",
		"sticker omitted",
		"gif omitted",
		"document omitted",
		"contact card omitted",
		"contact omitted",
		"location omitted",
		"null",
		"[non-text content or empty]",
	)...)
	rules = append(rules, ruleGroup(TierExact, ScopeAny, MatchPattern,
		`^\[[^\]]* omitted\]$`,
		`^<attached: [^>]+>$`,
	)...)

	rules = append(rules, ruleGroup(TierSystemActor, ScopeSystem, MatchPrefix,
		"you're now an admin",
		"you are now an admin",
		"you're no longer an admin",
		"you are no longer an admin",
		"you added",
		"you removed",
		"you were added",
		"you were removed",
		"you left",
		"you joined",
		"you created group",
		"you created this group",
		"you changed the subject",
		"you changed this group's icon",
		"you changed the group description",
		"you changed this group's settings",
		"you deleted this group's icon",
		"you now own",
		"your security code with",
		"this group was created",
	)...)
	rules = append(rules, ruleGroup(TierSystemActor, ScopeSystem, MatchSuffix,
		"left",
		"joined",
		"is now an admin",
		"is no longer an admin",
	)...)
	rules = append(rules, ruleGroup(TierSystemActor, ScopeSystem, MatchAfterName,
		"added",
		"removed",
		"left",
		"joined",
		"created group",
		"created this group",
		"changed the subject",
		"changed this group's icon",
		"changed the group description",
		"changed their phone number",
	)...)

	rules = append(rules, ruleGroup(TierNamedActor, ScopeNamed, MatchActorPrefix,
		"added",
		"removed",
		"left",
		"joined",
		"created group",
		"created this group",
		"changed the subject",
		"changed this group's icon",
		"changed the group description",
		"deleted this group's icon",
		"changed their phone number",
		"changed to",
	)...)

	rules = append(rules, ruleGroup(TierPassive, ScopeAny, MatchPassive,
		"was added",
		"was removed",
	)...)

	rules = append(rules, ruleGroup(TierPhoneChange, ScopeAny, MatchContains,
		"changed their phone number to a new number",
		"changed to a new number. tap to message or add the new number.",
		"changed to a new number",
	)...)

	rules = append(rules, ruleGroup(TierNotice, ScopeAny, MatchContains,
		"joined using this community's invite link",
		"joined using this group's invite link",
		"changed the subject from",
		"changed the subject to",
		"changed this group's icon",
		"changed the group description",
		"turned on disappearing messages",
		"turned off disappearing messages",
	)...)
	rules = append(rules, ruleGroup(TierNotice, ScopeAny, MatchPattern,
		`^your security code with .* changed`,
	)...)

	return rules
}

var (
	validTiers = map[Tier]bool{
		TierExact: true, TierSystemActor: true, TierNamedActor: true,
		TierPassive: true, TierPhoneChange: true, TierNotice: true,
	}
	validScopes = map[Scope]bool{ScopeAny: true, ScopeSystem: true, ScopeNamed: true}
	validKinds  = map[MatchKind]bool{
		MatchExact: true, MatchPrefix: true, MatchSuffix: true, MatchContains: true,
		MatchPattern: true, MatchActorPrefix: true, MatchPassive: true, MatchAfterName: true,
	}
)

// ValidateRules checks every rule for known enum values, a non-empty
// phrase and a compilable pattern. It returns all problems joined.
func ValidateRules(rules []Rule) error {
	var errs []error
	for i, r := range rules {
		field := func(name string) string { return fmt.Sprintf("rules[%d].%s", i, name) }
		if !validTiers[r.Tier] {
			errs = append(errs, &ConfigError{Field: field("tier"), Err: fmt.Errorf("unknown tier %q", r.Tier)})
		}
		if !validScopes[r.Scope] {
			errs = append(errs, &ConfigError{Field: field("scope"), Err: fmt.Errorf("unknown scope %q", r.Scope)})
		}
		if !validKinds[r.Kind] {
			errs = append(errs, &ConfigError{Field: field("kind"), Err: fmt.Errorf("unknown kind %q", r.Kind)})
		}
		if r.Phrase == "" {
			errs = append(errs, &ConfigError{Field: field("phrase"), Err: errors.New("phrase is empty")})
		}
		if r.Kind == MatchPattern {
			if _, err := regexp.Compile(r.Phrase); err != nil {
				errs = append(errs, &ConfigError{Field: field("phrase"), Err: err})
			}
		}
		if r.Kind == MatchActorPrefix && r.Scope != ScopeNamed {
			errs = append(errs, &ConfigError{Field: field("scope"), Err: errors.New("actor-prefix rules need scope \"named\"")})
		}
	}
	return errors.Join(errs...)
}

// LoadRules reads a YAML rule table from path
func LoadRules(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	rules, err := DecodeRules(f)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return rules, nil
}

// DecodeRules decodes and validates a YAML rule table
func DecodeRules(r io.Reader) ([]Rule, error) {
	var file RuleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, errors.New("rule file contains no rules")
	}
	nameRules(file.Rules)
	if err := ValidateRules(file.Rules); err != nil {
		return nil, err
	}
	return file.Rules, nil
}

// nameRules fills in missing rule names as "tier/phrase"
func nameRules(rules []Rule) {
	for i := range rules {
		if rules[i].Name == "" {
			rules[i].Name = fmt.Sprintf("%s/%s", rules[i].Tier, rules[i].Phrase)
		}
	}
}

// EncodeRules writes rules as a YAML rule file
func EncodeRules(w io.Writer, version string, rules []Rule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(RuleFile{Version: version, Rules: rules})
}
