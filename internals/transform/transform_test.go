package transform

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
)

// writeZip creates a zip at path. Names ending in "/" become directories
func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(name, "/") {
			w.Write([]byte(content))
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

// readZip returns all file entries of a zip
func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	a, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	files := map[string]string{}
	for _, name := range a.Entries() {
		if a.IsDir(name) {
			continue
		}
		data, err := a.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		files[name] = string(data)
	}
	return files
}

func vanillaJar(t *testing.T, dir string) minecraft.Jar {
	jar := minecraft.NewJar(dir, "1.2.5", minecraft.EnvClient)
	writeZip(t, jar.Path, map[string]string{
		"net/minecraft/client/Minecraft.class": "vanilla",
		"a.class":                              "vanilla a",
		"META-INF/MANIFEST.MF":                 "Manifest-Version: 1.0",
		"META-INF/MOJANG_C.SF":                 "signature",
	})
	return jar
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jar")
	writeZip(t, src, map[string]string{"a.txt": "a", "dir/": "", "dir/b.txt": "b"})

	a, err := OpenArchive(src)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Has("dir/b.txt") || !a.IsDir("dir") {
		t.Fatalf("unexpected entries %v", a.Entries())
	}
	a.WriteFile("a.txt", []byte("replaced"))
	a.WriteFile("new/c.txt", []byte("c"))
	if err := a.Remove("dir/b.txt"); err != nil {
		t.Fatal(err)
	}
	if err := a.Remove("nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	target := filepath.Join(dir, "out", "target.jar")
	if err := a.CommitTo(target); err != nil {
		t.Fatal(err)
	}
	a.Close()

	files := readZip(t, target)
	if files["a.txt"] != "replaced" || files["new/c.txt"] != "c" {
		t.Fatalf("unexpected content %v", files)
	}
	if _, ok := files["dir/b.txt"]; ok {
		t.Fatal("removed entry is still present")
	}

	entries, _ := os.ReadDir(filepath.Dir(target))
	if len(entries) != 1 {
		t.Fatalf("temporary files were left behind: %v", entries)
	}
}

func TestDeriveEmptyStep(t *testing.T) {
	dir := t.TempDir()
	src := vanillaJar(t, dir)
	p := &Pipeline{}

	jar, err := p.Derive(context.Background(), src, Step{Name: "nothing"})
	if err != nil {
		t.Fatal(err)
	}
	if jar.Path != src.Path {
		t.Fatalf("expected the source jar, got %s", jar.Path)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected no new files, got %v", entries)
	}
}

func TestDeriveMerge(t *testing.T) {
	dir := t.TempDir()
	src := vanillaJar(t, dir)
	mod := filepath.Join(dir, "mod.zip")
	writeZip(t, mod, map[string]string{
		"a.class":             "modded a",
		"modloader/":          "",
		"modloader/ML.class":  "modloader",
		"META-INF/MOD.SF":     "keep me",
	})

	step := Step{
		Name:   "jarmods",
		Shared: []Coordinate{{Name: "modloader", Version: "1.2.5", Path: mod}},
	}
	jar, err := (&Pipeline{}).Derive(context.Background(), src, step)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(jar.Path) != "minecraft-1.2.5-client_modloader-1.2.5.jar" {
		t.Fatalf("unexpected path %s", jar.Path)
	}

	files := readZip(t, jar.Path)
	if files["a.class"] != "modded a" || files["modloader/ML.class"] != "modloader" {
		t.Fatalf("supplementary archive was not merged: %v", files)
	}
	if files["net/minecraft/client/Minecraft.class"] != "vanilla" {
		t.Fatal("vanilla entry missing")
	}
	if _, ok := files["META-INF/MOJANG_C.SF"]; ok {
		t.Fatal("META-INF of the source was not removed")
	}
	// only the source's META-INF is stripped
	if files["META-INF/MOD.SF"] != "keep me" {
		t.Fatal("META-INF of the supplementary archive was dropped")
	}
}

func TestDeriveIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := vanillaJar(t, dir)
	mod := filepath.Join(dir, "mod.zip")
	writeZip(t, mod, map[string]string{"b.class": "b"})

	patched := 0
	step := Step{
		Name:   "jarmods",
		Shared: []Coordinate{{Name: "mod", Version: "1", Path: mod}},
		Patches: []Patch{{Name: "count", Apply: func(a *Archive) error {
			patched++
			return nil
		}}},
	}
	p := &Pipeline{}
	first, err := p.Derive(context.Background(), src, step)
	if err != nil {
		t.Fatal(err)
	}
	// a cache hit does not open the supplementary archive
	os.Remove(mod)
	second, err := p.Derive(context.Background(), src, step)
	if err != nil {
		t.Fatal(err)
	}
	if first.Path != second.Path || patched != 1 {
		t.Fatalf("second derive was not a cache hit (patched %d times)", patched)
	}

	// deriving an already derived jar again is a no-op
	again, err := p.Derive(context.Background(), first, step)
	if err != nil || again.Path != first.Path {
		t.Fatalf("expected %s, got %s (%v)", first.Path, again.Path, err)
	}
}

func TestDeriveSimilarNamesDoNotShareCache(t *testing.T) {
	dir := t.TempDir()
	src := vanillaJar(t, dir)
	underscore := filepath.Join(dir, "underscore.zip")
	dash := filepath.Join(dir, "dash.zip")
	writeZip(t, underscore, map[string]string{"mod.class": "from my_mod"})
	writeZip(t, dash, map[string]string{"mod.class": "from my-mod"})

	p := &Pipeline{}
	first, err := p.Derive(context.Background(), src, Step{
		Name:   "jarmods",
		Shared: []Coordinate{{Name: "my_mod", Version: "1", Path: underscore}},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Derive(context.Background(), src, Step{
		Name:   "jarmods",
		Shared: []Coordinate{{Name: "my-mod", Version: "1", Path: dash}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if first.Path == second.Path {
		t.Fatalf("different transforms share %s", first.Path)
	}
	if got := readZip(t, second.Path)["mod.class"]; got != "from my-mod" {
		t.Fatalf("second jar contains %q", got)
	}
}

func TestTransformIDOrderIndependent(t *testing.T) {
	a := Coordinate{Name: "alpha", Version: "1"}
	b := Coordinate{Name: "beta", Version: "2"}
	c := Coordinate{Name: "gamma", Version: "3"}

	one := Step{Shared: []Coordinate{a, b}, PerEnv: map[minecraft.Env][]Coordinate{minecraft.EnvClient: {c}}}
	two := Step{Shared: []Coordinate{b, a, a}, PerEnv: map[minecraft.Env][]Coordinate{minecraft.EnvClient: {c, b}}}

	if one.TransformID(minecraft.EnvClient) != "alpha-1+beta-2+gamma-3" {
		t.Fatalf("unexpected id %s", one.TransformID(minecraft.EnvClient))
	}
	if one.TransformID(minecraft.EnvClient) != two.TransformID(minecraft.EnvClient) {
		t.Fatal("transform id depends on declaration order")
	}
	if two.TransformID(minecraft.EnvServer) != "alpha-1+beta-2" {
		t.Fatalf("client archives leaked into the server: %s", two.TransformID(minecraft.EnvServer))
	}
}

func TestDeriveFailureCleanup(t *testing.T) {
	dir := t.TempDir()
	src := vanillaJar(t, dir)
	mod := filepath.Join(dir, "mod.zip")
	writeZip(t, mod, map[string]string{"b.class": "b"})

	boom := errors.New("boom")
	step := Step{
		Name:    "broken",
		Shared:  []Coordinate{{Name: "mod", Version: "1", Path: mod}},
		Patches: []Patch{{Name: "explode", Apply: func(a *Archive) error { return boom }}},
	}
	_, err := (&Pipeline{}).Derive(context.Background(), src, step)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	target := src.Derive(step.TransformID(minecraft.EnvClient))
	if _, err := os.Stat(target.Path); !os.IsNotExist(err) {
		t.Fatal("failed derive left a target behind")
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	src := vanillaJar(t, dir)
	mod := filepath.Join(dir, "mod.zip")
	writeZip(t, mod, map[string]string{"b.class": "b"})

	registry, err := NewRegistryBuilder().
		Add(Step{Name: "Jar Mods", Shared: []Coordinate{{Name: "mod", Version: "1", Path: mod}}}).
		Add(Step{Name: "server only", PerEnv: map[minecraft.Env][]Coordinate{minecraft.EnvServer: {{Name: "x", Version: "1", Path: mod}}}}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if registry.Steps()[0].Name != "jar-mods" {
		t.Fatalf("step name was not kebab-cased: %s", registry.Steps()[0].Name)
	}

	jar, err := (&Pipeline{Registry: registry}).Apply(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if len(jar.Transforms) != 1 || jar.Transforms[0] != "mod-1" {
		t.Fatalf("unexpected transforms %v", jar.Transforms)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	_, err := NewRegistryBuilder().Add(Step{Name: "jarMods"}).Add(Step{Name: "jar-mods"}).Build()
	var cfgErr *merrors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	client := filepath.Join(dir, "client.jar")
	server := filepath.Join(dir, "server.jar")
	writeZip(t, client, map[string]string{"shared.class": "client", "client.class": "c", "META-INF/MOJANG.SF": "sig"})
	writeZip(t, server, map[string]string{"shared.class": "server", "server.class": "s", "data/": ""})

	target := filepath.Join(dir, "combined.jar")
	if err := Merge(context.Background(), client, server, target, nil); err != nil {
		t.Fatal(err)
	}
	files := readZip(t, target)
	if files["shared.class"] != "client" || files["client.class"] != "c" || files["server.class"] != "s" {
		t.Fatalf("unexpected merge result %v", files)
	}
	if _, ok := files["META-INF/MOJANG.SF"]; ok {
		t.Fatal("signature was not removed")
	}
}

func TestPatches(t *testing.T) {
	a := NewArchive()
	a.WriteFile("META-INF/MOJANG.SF", []byte("sig"))
	a.WriteFile("META-INF/MOJANG.RSA", []byte("sig"))
	a.WriteFile("META-INF/services/x", []byte("x"))
	a.WriteFile("paulscode/sound.class", []byte("s"))
	a.WriteFile("net/Main.class", []byte("m"))

	for _, patch := range []Patch{StripSignatures(), RemovePrefixes("paulscode/"), SetMainClass("net.Main")} {
		if err := patch.Apply(a); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"META-INF", "META-INF/MANIFEST.MF", "META-INF/services/x", "net/Main.class"}
	got := a.Entries()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	manifest, _ := a.ReadFile("META-INF/MANIFEST.MF")
	if !strings.Contains(string(manifest), "Main-Class: net.Main") {
		t.Fatalf("unexpected manifest %q", manifest)
	}
}
