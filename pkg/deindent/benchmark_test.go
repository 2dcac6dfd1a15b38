package deindent_test

import (
	"io"
	"strings"
	"testing"

	"github.com/yaklabco/deindent/pkg/deindent"
)

// indentedSource is a block of 4-space indented code with blank lines around
// and inside it, repeated to a few hundred lines.
func indentedSource() string {
	chunk := `    func handle(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }

        fmt.Fprintln(w, "ok")
    }

`
	return "\n\n" + strings.Repeat(chunk, 50) + "\n\n"
}

func BenchmarkAnalyze(b *testing.B) {
	input := indentedSource()
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for range b.N {
		deindent.Analyze(input)
	}
}

func BenchmarkDeindentString(b *testing.B) {
	input := indentedSource()
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for range b.N {
		d, _ := deindent.New(input)
		_ = d.String()
	}
}

func BenchmarkDeindentWriteTo(b *testing.B) {
	input := indentedSource()
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for range b.N {
		d, _ := deindent.New(input)
		if _, err := d.WriteTo(io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeindentUnindented(b *testing.B) {
	input := strings.Repeat("x := compute(y)\n", 400)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for range b.N {
		d, _ := deindent.New(input)
		_ = d.Changed()
	}
}
