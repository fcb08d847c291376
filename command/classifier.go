package command

import (
	"fmt"
	"strings"

	"grocery-voice-ledger/extractor"
	"grocery-voice-ledger/normalizer"
)

const updateLastPhrase = "update last to"

// rule pairs a predicate on the normalized line with the builder for its
// command. Rules are tried in order and the first match wins.
type rule struct {
	kind  Kind
	match func(line string) bool
	build func(c *classifierImpl, u normalizer.Utterance) (Command, error)
}

var rules = []rule{
	{
		kind: KindDeleteAll,
		match: func(line string) bool {
			return strings.HasPrefix(line, "delete") && strings.Contains(line, "all")
		},
		build: func(_ *classifierImpl, _ normalizer.Utterance) (Command, error) {
			return Command{Kind: KindDeleteAll}, nil
		},
	},
	{
		kind: KindDeleteLast,
		match: func(line string) bool {
			return strings.HasPrefix(line, "delete") && strings.Contains(line, "last")
		},
		build: func(_ *classifierImpl, _ normalizer.Utterance) (Command, error) {
			return Command{Kind: KindDeleteLast}, nil
		},
	},
	{
		kind: KindDeleteByName,
		match: func(line string) bool {
			return strings.HasPrefix(line, "delete")
		},
		build: (*classifierImpl).deleteByName,
	},
	{
		kind: KindUpdateLastTo,
		match: func(line string) bool {
			return strings.Contains(line, updateLastPhrase)
		},
		build: (*classifierImpl).updateLastTo,
	},
	{
		kind: KindUpdateNamedTo,
		match: func(line string) bool {
			return strings.HasPrefix(line, "update ") && strings.Contains(line, " to ")
		},
		build: (*classifierImpl).updateNamedTo,
	},
	{
		kind: KindUpdateNamedInteractive,
		match: func(line string) bool {
			return strings.HasPrefix(line, "update ")
		},
		build: (*classifierImpl).updateNamedInteractive,
	},
	{
		kind: KindExport,
		match: func(line string) bool {
			return strings.HasPrefix(line, "export")
		},
		build: func(_ *classifierImpl, _ normalizer.Utterance) (Command, error) {
			return Command{Kind: KindExport}, nil
		},
	},
	{
		kind: KindAddItem,
		match: func(string) bool {
			return true
		},
		build: (*classifierImpl).addItem,
	},
}

type classifierImpl struct {
	extractor extractor.Interface
}

type Config struct {
	Extractor extractor.Interface
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is nil")
	}

	return &classifierImpl{
		extractor: cfg.Extractor,
	}, nil
}

func (c *classifierImpl) Classify(u normalizer.Utterance) (Command, error) {
	if u.Empty() {
		return Command{Kind: KindNone}, nil
	}

	for _, r := range rules {
		if r.match(u.Line) {
			return r.build(c, u)
		}
	}

	return Command{Kind: KindNone}, classifyErr(KindNone, ErrUnrecognized)
}

func (c *classifierImpl) ClassifyFollowUp(target string, u normalizer.Utterance) (Command, error) {
	entry, ok := c.extractor.Extract(u.Tokens)
	if !ok {
		return Command{Kind: KindUpdateNamedInteractive, Target: target}, classifyErr(KindUpdateNamedInteractive, ErrExtractionFailed)
	}

	return Command{Kind: KindUpdateNamedTo, Target: target, Entry: entry}, nil
}

func (c *classifierImpl) deleteByName(u normalizer.Utterance) (Command, error) {
	target := strings.TrimSpace(strings.TrimPrefix(u.Line, "delete"))
	if target == "" {
		return Command{Kind: KindDeleteByName}, classifyErr(KindDeleteByName, ErrEmptyArgument)
	}

	return Command{Kind: KindDeleteByName, Target: target}, nil
}

// "update last to 3 kilo aloo"
func (c *classifierImpl) updateLastTo(u normalizer.Utterance) (Command, error) {
	idx := strings.Index(u.Line, updateLastPhrase)
	rest := u.Line[idx+len(updateLastPhrase):]

	entry, ok := c.extractor.Extract(normalizer.Tokenize(rest))
	if !ok {
		return Command{Kind: KindUpdateLastTo}, classifyErr(KindUpdateLastTo, ErrExtractionFailed)
	}

	return Command{Kind: KindUpdateLastTo, Entry: entry}, nil
}

// "update aloo to 3 kilo aloo", or the rename "update aloo to achar"
func (c *classifierImpl) updateNamedTo(u normalizer.Utterance) (Command, error) {
	left, right, _ := strings.Cut(u.Line, " to ")

	target := strings.TrimSpace(strings.TrimPrefix(left, "update"))
	if target == "" {
		return Command{Kind: KindUpdateNamedTo}, classifyErr(KindUpdateNamedTo, ErrEmptyArgument)
	}

	parts := normalizer.Tokenize(right)

	if entry, ok := c.extractor.Extract(parts); ok {
		return Command{Kind: KindUpdateNamedTo, Target: target, Entry: entry}, nil
	}

	if len(parts) == 1 {
		return Command{Kind: KindRename, Target: target, NewName: parts[0]}, nil
	}

	return Command{Kind: KindUpdateNamedTo, Target: target}, classifyErr(KindUpdateNamedTo, ErrExtractionFailed)
}

func (c *classifierImpl) updateNamedInteractive(u normalizer.Utterance) (Command, error) {
	target := strings.TrimSpace(strings.TrimPrefix(u.Line, "update"))
	if target == "" {
		return Command{Kind: KindUpdateNamedInteractive}, classifyErr(KindUpdateNamedInteractive, ErrEmptyArgument)
	}

	return Command{Kind: KindUpdateNamedInteractive, Target: target}, nil
}

func (c *classifierImpl) addItem(u normalizer.Utterance) (Command, error) {
	entry, ok := c.extractor.Extract(u.Tokens)
	if !ok {
		return Command{Kind: KindAddItem}, classifyErr(KindAddItem, ErrUnrecognized)
	}

	return Command{Kind: KindAddItem, Entry: entry}, nil
}
