package langdetect

import (
	"testing"
)

func BenchmarkDetectByHint(b *testing.B) {
	code := []byte(`package main

func main() {
	run()
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectByExtension(b *testing.B) {
	code := []byte("fn main() {\n    println!(\"hi\");\n}\n")
	b.ResetTimer()
	for range b.N {
		DetectFile("main.rs", code)
	}
}

func BenchmarkDetectClassifier(b *testing.B) {
	code := []byte(`class Greeter
  def initialize(name)
    @name = name
  end

  def greet
    puts "Hello, #{@name}"
  end
end`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}
