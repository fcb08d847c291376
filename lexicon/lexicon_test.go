package lexicon

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexicon(t *testing.T) {
	lex := Default()

	t.Run("number words map to their values", func(t *testing.T) {
		for word, want := range map[string]float64{"one": 1, "ten": 10, "do": 2, "teen": 3, "half": 0.5, "AADHA": 0.5} {
			got, ok := lex.Number(word)
			require.True(t, ok, word)
			assert.Equal(t, want, got, word)
		}

		_, ok := lex.Number("eleven")
		assert.False(t, ok)
	})

	t.Run("unit synonyms normalize to one canonical value", func(t *testing.T) {
		for _, w := range []string{"kg", "kilo", "kilogram", "KILO"} {
			assert.Equal(t, "kg", lex.NormalizeUnit(w))
		}

		for _, w := range []string{"liter", "litre", "l", "ltr"} {
			assert.Equal(t, "l", lex.NormalizeUnit(w))
		}
	})

	t.Run("unit normalization is idempotent", func(t *testing.T) {
		for _, c := range CanonicalUnits {
			assert.Equal(t, c, lex.NormalizeUnit(c))
			assert.Equal(t, c, lex.NormalizeUnit(lex.NormalizeUnit(c)))
		}
	})

	t.Run("unknown units pass through unchanged", func(t *testing.T) {
		_, ok := lex.Unit("t-shirt")
		assert.False(t, ok)
		assert.Equal(t, "t-shirt", lex.NormalizeUnit("t-shirt"))
	})

	t.Run("keywords match as substrings", func(t *testing.T) {
		kw, ok := lex.ContainsKeyword("fresh milk please")
		assert.True(t, ok)
		assert.Equal(t, "milk", kw)

		_, ok = lex.ContainsKeyword("nothing here")
		assert.False(t, ok)
	})
}

func TestCompile(t *testing.T) {
	t.Run("unknown canonical unit is rejected", func(t *testing.T) {
		table := DefaultTable()
		table.Units = append(table.Units, UnitWords{Canonical: "dozen", Words: []string{"dozen"}})

		_, err := Compile(table)
		assert.Error(t, err)
	})

	t.Run("negative number value is rejected", func(t *testing.T) {
		table := DefaultTable()
		table.Numbers = append(table.Numbers, NumberWords{Value: -1, Words: []string{"minus"}})

		_, err := Compile(table)
		assert.Error(t, err)
	})

	t.Run("table without exit phrases is rejected", func(t *testing.T) {
		table := DefaultTable()
		table.ExitPhrases = nil

		_, err := Compile(table)
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "lexicon.yaml", []byte(`
numbers:
  - value: 12
    words: [dozen, barah]
units:
  - canonical: kg
    words: [kilos]
keywords:
  - category: fruit
    words: [mango, aam]
wake_phrases: [namaste device]
`), 0o644))

	lex, err := LoadFile(fs, "lexicon.yaml")
	require.NoError(t, err)

	t.Run("file entries extend the defaults", func(t *testing.T) {
		v, ok := lex.Number("barah")
		assert.True(t, ok)
		assert.Equal(t, 12.0, v)

		assert.Equal(t, "kg", lex.NormalizeUnit("kilos"))
		assert.Equal(t, "kg", lex.NormalizeUnit("kilo"))

		_, ok = lex.ContainsKeyword("aam")
		assert.True(t, ok)

		assert.Contains(t, lex.WakePhrases(), "namaste device")
		assert.Contains(t, lex.WakePhrases(), "hello device")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadFile(fs, "missing.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("numbers: {"), 0o644))

		_, err := LoadFile(fs, "bad.yaml")
		assert.Error(t, err)
	})
}

func TestHolder(t *testing.T) {
	t.Run("replace swaps the current lexicon and ignores nil", func(t *testing.T) {
		first := Default()
		h := NewHolder(first)
		assert.Same(t, first, h.Current())

		second := Default()
		h.Replace(second)
		assert.Same(t, second, h.Current())

		h.Replace(nil)
		assert.Same(t, second, h.Current())
	})
}

func TestHolderWatch(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")

	// replace the file in one step so the watcher never sees a half written table
	writeTable := func(t *testing.T, content string) {
		t.Helper()

		tmp := filepath.Join(dir, ".lexicon.yaml.tmp")
		require.NoError(t, afero.WriteFile(fs, tmp, []byte(content), 0o644))
		require.NoError(t, fs.Rename(tmp, path))
	}

	hasKeyword := func(h *Holder, word string) bool {
		_, ok := h.Current().ContainsKeyword(word)
		return ok
	}

	writeTable(t, "keywords:\n  - category: fruit\n    words: [mango]\n")

	lex, err := LoadFile(fs, path)
	require.NoError(t, err)

	h := NewHolder(lex)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, h.Watch(ctx, fs, path, nil))

	t.Run("a rewritten table is picked up", func(t *testing.T) {
		writeTable(t, "keywords:\n  - category: fruit\n    words: [mango, papaya]\n")

		assert.Eventually(t, func() bool {
			return hasKeyword(h, "papaya")
		}, 5*time.Second, 20*time.Millisecond)
	})

	t.Run("a malformed table keeps the previous one", func(t *testing.T) {
		current := h.Current()

		writeTable(t, "numbers: {")
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "other.yaml"), []byte("keywords: []"), 0o644))

		assert.Never(t, func() bool {
			return h.Current() != current
		}, 500*time.Millisecond, 20*time.Millisecond)
	})

	t.Run("the watcher keeps running after a bad table", func(t *testing.T) {
		writeTable(t, "keywords:\n  - category: fruit\n    words: [guava]\n")

		assert.Eventually(t, func() bool {
			return hasKeyword(h, "guava")
		}, 5*time.Second, 20*time.Millisecond)
		assert.False(t, hasKeyword(h, "papaya"))
	})
}
