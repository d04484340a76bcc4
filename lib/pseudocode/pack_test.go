// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// sampleSource is a function body with one explicit marker, indented
// as if nested inside a class.
var sampleSource = []string{
	"    def f(x):",
	"        a",
	"        ### step2",
	"        b",
}

func TestAuthorSegmentsAndNormalizes(t *testing.T) {
	pack, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	want := []Block{
		{Label: "x", Lines: []string{"a"}},
		{Label: "step2", Lines: []string{"b"}},
	}
	if got := pack.Blocks(); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks: got %+v, want %+v", got, want)
	}
}

func TestAuthorWrongFunctionName(t *testing.T) {
	_, err := Author(AuthorRequest{FunctionName: "g", SourceLines: sampleSource})
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("Author: got %v, want ErrMarkerNotFound", err)
	}
}

func TestLoadRoundtrip(t *testing.T) {
	authored, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	loaded, err := Load(authored.Encoded())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reflect.DeepEqual(loaded.Blocks(), authored.Blocks()) {
		t.Errorf("loaded blocks differ: %+v vs %+v", loaded.Blocks(), authored.Blocks())
	}
	if loaded.Encoded() != authored.Encoded() {
		t.Errorf("loaded encoding differs: %q vs %q", loaded.Encoded(), authored.Encoded())
	}
	if stale, _ := loaded.Stale(); stale {
		t.Error("loaded pack reports stale; drift checking must be skipped without source")
	}
}

func TestLoadCorruptEncoding(t *testing.T) {
	if _, err := Load("not hex at all"); !errors.Is(err, ErrCorruptPack) {
		t.Errorf("Load: got %v, want ErrCorruptPack", err)
	}
}

func TestAuthorMatchingStoredEncoding(t *testing.T) {
	first, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	var notified atomic.Int32
	second, err := Author(AuthorRequest{
		FunctionName:   "f",
		SourceLines:    sampleSource,
		StoredEncoding: first.Encoded(),
		Notify:         func(string) { notified.Add(1) },
	})
	if err != nil {
		t.Fatalf("Author with stored encoding: %v", err)
	}

	if stale, message := second.Stale(); stale {
		t.Errorf("pack reports stale with matching stored encoding: %s", message)
	}
	second.Flattened()
	second.Encoded()
	if notified.Load() != 0 {
		t.Errorf("notification fired %d times for a matching encoding", notified.Load())
	}
}

func TestAuthorDriftNotificationIsOneShot(t *testing.T) {
	var notified atomic.Int32
	pack, err := Author(AuthorRequest{
		FunctionName:   "f",
		SourceLines:    sampleSource,
		StoredEncoding: "00ff",
		Notify:         func(string) { notified.Add(1) },
	})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	if notified.Load() != 0 {
		t.Error("notification fired at construction; must be deferred to first access")
	}

	if _, err := pack.Lines("step2"); err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if notified.Load() != 1 {
		t.Fatalf("notification count after first access: got %d, want 1", notified.Load())
	}

	pack.Lines("step2")
	pack.Blocks()
	pack.Flattened()
	pack.Encoded()
	pack.Stale()
	if notified.Load() != 1 {
		t.Errorf("notification count after repeated access: got %d, want 1", notified.Load())
	}
}

func TestAuthorDriftNotificationConcurrent(t *testing.T) {
	var notified atomic.Int32
	pack, err := Author(AuthorRequest{
		FunctionName:   "f",
		SourceLines:    sampleSource,
		StoredEncoding: "00ff",
		Notify:         func(string) { notified.Add(1) },
	})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	var group sync.WaitGroup
	for i := 0; i < 16; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			pack.Flattened()
			pack.Encoded()
		}()
	}
	group.Wait()

	if notified.Load() != 1 {
		t.Errorf("notification count under concurrent access: got %d, want 1", notified.Load())
	}
}

func TestAuthorDriftMessageCarriesFreshEncoding(t *testing.T) {
	pack, err := Author(AuthorRequest{
		FunctionName:   "f",
		SourceLines:    sampleSource,
		StoredEncoding: "00ff",
	})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	stale, message := pack.Stale()
	if !stale {
		t.Fatal("pack not stale with mismatched stored encoding")
	}
	if !strings.Contains(message, pack.Encoded()) {
		t.Errorf("drift message %q does not carry the fresh encoding", message)
	}
	if !strings.Contains(message, Ref("00ff")) || !strings.Contains(message, Ref(pack.Encoded())) {
		t.Errorf("drift message %q does not carry both pack refs", message)
	}
}

func TestAuthorWithoutStoredEncodingIsStale(t *testing.T) {
	// Authoring with no stored encoding means the caller has nothing
	// persisted yet; that counts as drift so the author is told what
	// to store.
	pack, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	stale, message := pack.Stale()
	if !stale {
		t.Fatal("pack with no stored encoding not marked stale")
	}
	if !strings.Contains(message, pack.Encoded()) {
		t.Errorf("drift message %q does not carry the fresh encoding", message)
	}
}

func TestLinesLookup(t *testing.T) {
	pack, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	lines, err := pack.Lines("step2")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"b"}) {
		t.Errorf("Lines(step2): got %q, want [b]", lines)
	}

	if _, err := pack.Lines("missing"); !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("Lines(missing): got %v, want ErrLabelNotFound", err)
	}
}

func TestDuplicateLabelLookupIsLastWriteWins(t *testing.T) {
	source := []string{
		"def f():",
		"  ### loop",
		"  first",
		"  ### loop",
		"  second",
	}
	pack, err := Author(AuthorRequest{FunctionName: "f", SourceLines: source})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	lines, err := pack.Lines("loop")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"second"}) {
		t.Errorf("Lines(loop): got %q, want the last block's lines", lines)
	}

	// Ordered iteration still exposes both blocks.
	blocks := pack.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("block count: got %d, want 3", len(blocks))
	}
	if blocks[1].Lines[0] != "first" || blocks[2].Lines[0] != "second" {
		t.Errorf("ordered iteration lost a duplicate block: %+v", blocks)
	}
}

func TestFlattened(t *testing.T) {
	pack, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	want := []string{"a", "b"}
	if got := pack.Flattened(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flattened: got %q, want %q", got, want)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	pack, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	blocks := pack.Blocks()
	blocks[0].Label = "tampered"
	blocks[0].Lines[0] = "tampered"

	lines, err := pack.Lines("x")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	lines[0] = "tampered"

	fresh := pack.Blocks()
	if fresh[0].Label != "x" || fresh[0].Lines[0] != "a" {
		t.Errorf("pack state changed through accessor results: %+v", fresh[0])
	}
}

func TestRender(t *testing.T) {
	pack, err := Author(AuthorRequest{FunctionName: "f", SourceLines: sampleSource})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}

	want := "### x\na\n### step2\nb\n"
	if got := pack.Render(nil); got != want {
		t.Errorf("Render: got %q, want %q", got, want)
	}
}

func TestRefFormat(t *testing.T) {
	ref := Ref("789c010000ffff00000001")
	if !strings.HasPrefix(ref, "psc-") {
		t.Errorf("ref %q missing psc- prefix", ref)
	}
	if len(ref) != len("psc-")+12 {
		t.Errorf("ref %q: got length %d, want %d", ref, len(ref), len("psc-")+12)
	}
	if ref != Ref("789c010000ffff00000001") {
		t.Error("ref not stable for identical input")
	}
	if ref == Ref("different") {
		t.Error("distinct inputs produced the same ref")
	}
}
