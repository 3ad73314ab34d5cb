package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kinds of fenced blocks run by TestExamples. Other blocks are ignored.
const (
	setupBlock = "bash setup"    // starts a new example in an empty folder
	runBlock   = "bash run"      // its output is checked by the next console check
	checkBlock = "console check" // expected output of the last run
	testBlock  = "bash check"    // must exit with 0
)

// parse returns the markdown tree of a file with its source.
func parse(t *testing.T, file string) (ast.Node, []byte) {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	return goldmark.DefaultParser().Parse(text.NewReader(source)), source
}

// listedTopics returns the topics of the readme bullet list: "* name: what".
func listedTopics(t *testing.T) []string {
	t.Helper()
	root, source := parse(t, Readme+".md")
	var topics []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		item, ok := n.(*ast.ListItem)
		if !entering || !ok || item.FirstChild() == nil {
			return ast.WalkContinue, nil
		}
		line := string(item.FirstChild().Lines().Value(source))
		if name, _, found := strings.Cut(line, ":"); found {
			topics = append(topics, strings.TrimSpace(name))
		}
		return ast.WalkSkipChildren, nil
	})
	return topics
}

func TestTopics(t *testing.T) {
	listed := listedTopics(t)
	slices.Sort(listed)

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	if diff := cmp.Diff(all, listed); diff != "" {
		t.Errorf("topics listed in the readme mismatch (-files +readme):\n%s", diff)
	}
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("GetTopic(%q) error = %v", topic, err)
		}
	}
}

func TestGetTopicsStar(t *testing.T) {
	content, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error = %v", err)
	}
	for _, heading := range []string{"# Statements", "# Dates", "# Configuration"} {
		if !strings.Contains(content, heading) {
			t.Errorf("GetTopic(*) has no %q", heading)
		}
	}
	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic(nope) succeeded")
	}
}

// example is a fenced block to run.
type example struct {
	kind   string
	script string
	pos    string // file:line
}

// examples returns the runnable blocks of a markdown file, in order.
func examples(t *testing.T, file string) []example {
	t.Helper()
	root, source := parse(t, file)
	var blocks []example
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(source))
		switch kind {
		case setupBlock, runBlock, checkBlock, testBlock:
		default:
			return ast.WalkContinue, nil
		}
		line := 1 + bytes.Count(source[:fcb.Info.Segment.Start], []byte{'\n'})
		blocks = append(blocks, example{
			kind:   kind,
			script: string(fcb.Lines().Value(source)),
			pos:    fmt.Sprintf("%s:%d", file, line),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// shell runs the examples of a file in a temporary folder, one per setup.
type shell struct {
	env    []string
	dir    string
	output string // of the last run block
}

func (sh *shell) exec(t *testing.T, ex example) {
	t.Helper()
	if ex.kind == checkBlock {
		got := strings.TrimSpace(strings.ReplaceAll(sh.output, "\t", "        "))
		if diff := cmp.Diff(strings.TrimSpace(ex.script), got); diff != "" {
			t.Errorf("%s: output mismatch (-want +got):\n%s", ex.pos, diff)
		}
		return
	}
	if ex.kind == setupBlock {
		sh.dir = t.TempDir()
	}
	cmd := exec.Command("bash", "-c", "set -e; "+ex.script)
	cmd.Dir = sh.dir
	cmd.Env = sh.env
	out, err := cmd.CombinedOutput()
	if ex.kind == runBlock {
		sh.output = string(out)
	}
	switch {
	case err == nil:
	case ex.kind == testBlock:
		t.Errorf("%s: check failed: %v\n%s", ex.pos, err, out)
	default:
		t.Fatalf("%s: %s failed: %v\n%s", ex.pos, ex.kind, err, out)
	}
}

func TestExamples(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "stmt"), "../stmt/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("cannot build stmt: %v\n%s", err, out)
	}
	env := append(os.Environ(),
		"PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"),
		"STMT_CONFIG=", // the user's configuration must not leak into the examples.
	)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			sh := &shell{env: env, dir: t.TempDir()}
			for _, ex := range examples(t, file) {
				sh.exec(t, ex)
			}
		})
	}
}
