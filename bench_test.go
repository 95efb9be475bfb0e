package malbolge_gen

import (
	"context"
	"testing"

	"nickandperla.net/malbolge"
)

// BenchmarkBootstrapExecution measures the interpreter hot loop on the fixed
// generator prefix. Run with: go test -run=^$ -bench=BenchmarkBootstrap
func BenchmarkBootstrapExecution(b *testing.B) {
	program := BootstrapPrefix()
	interp := malbolge.NewInterpreter(nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := interp.Execute(context.Background(), program, false); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSnapshotExtension measures the generator's critical path: cloning
// a snapshot and stepping one appended opcode.
func BenchmarkSnapshotExtension(b *testing.B) {
	interp := malbolge.NewInterpreter(nil)
	base, err := interp.Execute(context.Background(), BootstrapPrefix(), true)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := interp.ExecuteFromSnapshot(context.Background(), base.Machine, "o", false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateTwoBytes(b *testing.B) {
	for i := 0; i < b.N; i++ {
		generator := NewGenerator(&GeneratorConfig{RandomSeed: 42})
		if _, err := generator.GenerateForString(context.Background(), "Hi"); err != nil {
			b.Fatal(err)
		}
	}
}
