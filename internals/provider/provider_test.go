package provider

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/mojang"
	"github.com/minepkg/mcjar/internals/transform"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		notation string
		version  string
		env      minecraft.Env
		wantErr  bool
	}{
		{"net.minecraft:minecraft:1.19.2", "1.19.2", minecraft.EnvCombined, false},
		{"net.minecraft:minecraft:1.19.2:client", "1.19.2", minecraft.EnvClient, false},
		{"net.minecraft:minecraft:b1.7.3:server", "b1.7.3", minecraft.EnvServer, false},
		{"net.minecraft:minecraft:1.14%20Pre-Release%201", "1.14 Pre-Release 1", minecraft.EnvCombined, false},
		{"com.example:minecraft:1.19.2", "", minecraft.EnvCombined, true},
		{"net.minecraft:notminecraft:1.19.2", "", minecraft.EnvCombined, true},
		{"net.minecraft:minecraft:1.19.2:sources", "", minecraft.EnvCombined, true},
		{"net.minecraft:minecraft", "", minecraft.EnvCombined, true},
	}
	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			dep, err := ParseCoordinate(tt.notation)
			if tt.wantErr {
				var cfgErr *merrors.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigurationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if dep.Version != tt.version || dep.Env() != tt.env {
				t.Fatalf("unexpected dependency %+v", dep)
			}
		})
	}
}

func TestSelectDependency(t *testing.T) {
	var cfgErr *merrors.ConfigurationError
	if _, err := SelectDependency(nil); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for no dependencies, got %v", err)
	}
	if _, err := SelectDependency([]string{"net.minecraft:minecraft:1.19.2", "net.minecraft:minecraft:1.18.2"}); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for multiple dependencies, got %v", err)
	}
	dep, err := SelectDependency([]string{"net.minecraft:minecraft:1.19.2:client"})
	if err != nil || dep.String() != "net.minecraft:minecraft:1.19.2:client" {
		t.Fatalf("unexpected result %v %v", dep, err)
	}
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func sum(b []byte) string {
	s := sha1.Sum(b)
	return hex.EncodeToString(s[:])
}

// splitVersionServer serves version 1.19.2 with real client and server jars
func splitVersionServer(t *testing.T) *httptest.Server {
	files := map[string][]byte{}
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(ts.Close)

	client := zipBytes(t, map[string]string{"shared.class": "client", "client.class": "c"})
	server := zipBytes(t, map[string]string{"shared.class": "server", "server.class": "s"})
	files["/client.jar"] = client
	files["/server.jar"] = server

	version, _ := json.Marshal(map[string]interface{}{
		"id": "1.19.2",
		"downloads": map[string]interface{}{
			"client": map[string]interface{}{"url": ts.URL + "/client.jar", "sha1": sum(client), "size": len(client)},
			"server": map[string]interface{}{"url": ts.URL + "/server.jar", "sha1": sum(server), "size": len(server)},
		},
	})
	files["/1.19.2.json"] = version

	manifest, _ := json.Marshal(minecraft.VersionManifest{Versions: []minecraft.VersionEntry{
		{ID: "1.19.2", URL: ts.URL + "/1.19.2.json", Sha1: sum(version)},
		{ID: "1.3.1", URL: ts.URL + "/1.3.1.json"},
	}})
	files["/manifest.json"] = manifest
	return ts
}

func newTestProvider(t *testing.T, ts *httptest.Server, pipeline *transform.Pipeline) *Provider {
	opts := mojang.DefaultOptions(t.TempDir())
	opts.Client = ts.Client()
	opts.ManifestURL = ts.URL + "/manifest.json"
	return New(mojang.New(opts), pipeline, nil)
}

func TestMinecraftMergesCombined(t *testing.T) {
	ts := splitVersionServer(t)
	p := newTestProvider(t, ts, nil)

	jar, err := p.Minecraft(context.Background(), "1.19.2", minecraft.EnvCombined)
	if err != nil {
		t.Fatal(err)
	}
	if jar.Env != minecraft.EnvCombined || filepath.Base(jar.Path) != "minecraft-1.19.2.jar" {
		t.Fatalf("unexpected jar %+v", jar)
	}

	a, err := transform.OpenArchive(jar.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	shared, _ := a.ReadFile("shared.class")
	if string(shared) != "client" || !a.Has("server.class") || !a.Has("client.class") {
		t.Fatalf("unexpected merged jar %v", a.Entries())
	}
}

func TestProvideAppliesPipeline(t *testing.T) {
	ts := splitVersionServer(t)
	mod := filepath.Join(t.TempDir(), "mod.zip")
	if err := os.WriteFile(mod, zipBytes(t, map[string]string{"mod.class": "m"}), 0644); err != nil {
		t.Fatal(err)
	}
	registry, err := transform.NewRegistryBuilder().
		Add(transform.Step{Name: "jarmods", Shared: []transform.Coordinate{{Name: "mod", Version: "1.0", Path: mod}}}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	p := newTestProvider(t, ts, &transform.Pipeline{Registry: registry})

	dep, _ := ParseCoordinate("net.minecraft:minecraft:1.19.2:client")
	jar, err := p.ProvideDependency(context.Background(), dep)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(jar.Path) != "minecraft-1.19.2-client_mod-1.0.jar" {
		t.Fatalf("unexpected path %s", jar.Path)
	}
}

func TestProvideSynthetic(t *testing.T) {
	opts := mojang.DefaultOptions(t.TempDir())
	opts.Offline = true
	p := New(mojang.New(opts), nil, nil)

	for _, env := range minecraft.Envs {
		jar, err := p.Provide(context.Background(), "empty-1.19.2", env)
		if err != nil {
			t.Fatalf("%s: %s", env, err)
		}
		if _, err := os.Stat(jar.Path); err != nil {
			t.Fatal(err)
		}
	}
}
