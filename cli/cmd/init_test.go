package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// initContext builds a kong context for a CLI struct with the config file
// path bound to the variable Init reads.
func initContext(
	t *testing.T,
	cli any,
	confPath string,
	args []string,
) context.Context {
	t.Helper()

	parser, err := kong.New(cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parsing args: %v", err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	var cli struct {
		Source   []string `name:"source"`
		MaxDepth int      `default:"64" name:"max-depth"`
		Strict   bool     `name:"strict"`
	}

	confPath := filepath.Join(t.TempDir(), "config.toml")

	ctx := initContext(t, &cli, confPath,
		[]string{"--source=base.cfg", "--max-depth=32", "--strict"})

	initCmd := &Init{}
	if err := initCmd.Run(ctx); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	var written struct {
		Source   []string `toml:"source"`
		MaxDepth int      `toml:"max-depth"`
		Strict   bool     `toml:"strict"`
	}

	if _, err := toml.DecodeFile(confPath, &written); err != nil {
		t.Fatalf("generated file is not valid TOML: %v", err)
	}

	if len(written.Source) != 1 || written.Source[0] != "base.cfg" {
		t.Errorf("source = %v, want [base.cfg]", written.Source)
	}

	if written.MaxDepth != 32 {
		t.Errorf("max-depth = %d, want 32", written.MaxDepth)
	}

	if !written.Strict {
		t.Error("strict = false, want true")
	}
}

func TestInitRun_ExistingFile(t *testing.T) {
	t.Parallel()

	var cli struct{}

	confPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(confPath, []byte("# existing\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := initContext(t, &cli, confPath, nil)

	initCmd := &Init{}

	err := initCmd.Run(ctx)
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("Run error = %v, want ErrFileExists", err)
	}

	initCmd.Force = true
	if err := initCmd.Run(ctx); err != nil {
		t.Fatalf("Run with --force: unexpected error: %v", err)
	}

	data, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) == "# existing\n" {
		t.Error("Run with --force did not overwrite the file")
	}
}

func TestInitRun_BadPath(t *testing.T) {
	t.Parallel()

	var cli struct{}

	confPath := filepath.Join(t.TempDir(), "no", "such", "dir", "config.toml")

	ctx := initContext(t, &cli, confPath, nil)

	err := (&Init{}).Run(ctx)
	if !errors.Is(err, ErrWriteConfig) {
		t.Fatalf("Run error = %v, want ErrWriteConfig", err)
	}
}

func TestInitFlagValues(t *testing.T) {
	t.Parallel()

	var cli struct {
		Name    string   `name:"name"`
		Empty   string   `name:"empty"`
		Count   int      `name:"count"`
		Tags    []string `name:"tags"`
		Hidden  string   `hidden:"" name:"hidden"`
		Helpish bool     `name:"helpful"`
	}

	ctx := initContext(t, &cli, "unused",
		[]string{"--name=demo", "--count=3", "--tags=a", "--tags=b",
			"--hidden=secret", "--helpful"})

	values := (&Init{}).flagValues(ctx)

	if got := values["name"]; got != "demo" {
		t.Errorf("name = %v, want demo", got)
	}

	if got := values["count"]; got != 3 {
		t.Errorf("count = %v, want 3", got)
	}

	tags, ok := values["tags"].([]string)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v, want [a b]", values["tags"])
	}

	if _, ok := values["empty"]; ok {
		t.Error("empty string flag should not be persisted")
	}

	if _, ok := values["hidden"]; ok {
		t.Error("hidden flag should not be persisted")
	}

	if _, ok := values["help"]; ok {
		t.Error("help flag should not be persisted")
	}

	// "helpful" shares the "help" prefix and is skipped with it.
	if _, ok := values["helpful"]; ok {
		t.Error("help-prefixed flag should not be persisted")
	}
}
