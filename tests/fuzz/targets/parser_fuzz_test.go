package targets

import (
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/reader"
)

// FuzzReader feeds raw bytes to the reader and parser. Neither may panic.
func FuzzReader(f *testing.F) {
	f.Add([]byte("(L32 (+ 1 2))"))
	f.Add([]byte("(L32 ((dict (a 1) (b 2)) 'a))"))
	f.Add([]byte(`(L3 (define s "x\"y") '(1 . 2))`))
	f.Add([]byte("(L32 (dict (a"))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 4096 {
			return
		}
		src := string(data)
		if _, err := reader.Read(src); err != nil {
			return
		}
		_, _ = parser.ParseProgram(src)
	})
}

// FuzzParser checks that unparsing a generated program reads back to the
// same tree.
func FuzzParser(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{5, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	f.Add([]byte{2, 4, 4, 4, 5, 5, 7, 7, 3, 0, 1})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1000 {
			return
		}
		input := generatorProgram(data)

		prog, err := parser.ParseProgram(input)
		if err != nil {
			t.Fatalf("generated program does not parse:\n%s\nerror: %v", input, err)
		}
		printed := prog.String()
		again, err := parser.ParseProgram(printed)
		if err != nil {
			t.Fatalf("unparsed program does not parse:\n%s\nerror: %v", printed, err)
		}
		if again.String() != printed {
			t.Fatalf("round trip changed the program:\n%s\n%s", printed, again.String())
		}
	})
}
