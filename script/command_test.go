package script

import "testing"

func TestParseLineTokenizesOnSpacesTabsQuotes(t *testing.T) {
	cmd, ok := parseLine(`C "foo" 3`, 1)
	if !ok {
		t.Fatal("expected ok")
	}
	if cmd.Type != Create || len(cmd.Args) != 2 || cmd.Args[0] != "foo" || cmd.Args[1] != "3" {
		t.Fatalf("unexpected parse: %+v", cmd)
	}
}

func TestParseLineTab(t *testing.T) {
	cmd, ok := parseLine("C\tfoo\t3", 1)
	if !ok || cmd.Type != Create || cmd.Args[0] != "foo" || cmd.Args[1] != "3" {
		t.Fatalf("unexpected parse: %+v ok=%v", cmd, ok)
	}
}

func TestParseLineBlank(t *testing.T) {
	if _, ok := parseLine("", 1); ok {
		t.Fatal("expected blank line to be rejected")
	}
	if _, ok := parseLine("   ", 1); ok {
		t.Fatal("expected whitespace-only line to be rejected")
	}
}

func TestParseLineBufferTakesRawRemainder(t *testing.T) {
	cmd, ok := parseLine(`B hello "world"`, 1)
	if !ok || cmd.Type != Buffer {
		t.Fatalf("unexpected parse: %+v ok=%v", cmd, ok)
	}
	if cmd.Args[0] != `hello "world"` {
		t.Fatalf("buffer payload = %q, want preserved quotes", cmd.Args[0])
	}
}

func TestParseLineBufferTooShort(t *testing.T) {
	cmd, ok := parseLine("B", 1)
	if !ok || cmd.Type != Buffer || cmd.Args != nil {
		t.Fatalf("unexpected parse: %+v ok=%v", cmd, ok)
	}
}
