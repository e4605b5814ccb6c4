package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.Title != "Wigest" {
		t.Errorf("Title = %q, want Wigest", cfg.Title)
	}
	if cfg.Root != "." {
		t.Errorf("Root = %q, want .", cfg.Root)
	}
	if cfg.Base != "./" {
		t.Errorf("Base = %q, want ./", cfg.Base)
	}
	if cfg.Build.OutDir != "dist" {
		t.Errorf("Build.OutDir = %q, want dist", cfg.Build.OutDir)
	}
	if !cfg.Build.ShouldEmptyOutDir() {
		t.Error("Build.ShouldEmptyOutDir() = false, want true")
	}
	if cfg.Build.Minify || cfg.Build.Sourcemap {
		t.Error("Minify/Sourcemap enabled by default")
	}
	if cfg.Server.Port != 1122 {
		t.Errorf("Server.Port = %d, want 1122", cfg.Server.Port)
	}
	if !cfg.Server.ShouldOpen() {
		t.Error("Server.ShouldOpen() = false, want true")
	}
	if cfg.MissingContainers != "fail" {
		t.Errorf("MissingContainers = %q, want fail", cfg.MissingContainers)
	}
	if len(cfg.Charts) != 0 {
		t.Errorf("len(Charts) = %d, want 0", len(cfg.Charts))
	}
}

func TestDefault_MatchesEmptyParse(t *testing.T) {
	parsed, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(Default(), parsed) {
		t.Errorf("Default() = %+v, want %+v", Default(), parsed)
	}
}

func TestParse_DefaultsRoundTrip(t *testing.T) {
	cfg := Default()

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, data)
	}
	if !reflect.DeepEqual(cfg, again) {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", again, cfg)
	}

	for _, want := range []string{"root: .", "base: ./", "out_dir: dist", "empty_out_dir: true", "port: 1122", "open: true"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("marshalled config missing %q:\n%s", want, data)
		}
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
title: Tableau de bord
root: web
base: /dashboard/
build:
  out_dir: public
  empty_out_dir: false
  minify: true
  sourcemap: true
server:
  port: 9090
  open: false
missing_containers: skip
charts:
  - container: chartSync
    type: pie
    title: Sync
    labels: [Synchronisés, En échec]
    legend: bottom
    datasets:
      - label: Synchronisation
        data: [87, 13]
        background: ["#1cc88a", "#e74a3b"]
  - container: chartPresences
    type: line
    labels: [Lundi, Mardi]
    legend:
      display: false
    datasets:
      - label: Présences
        data: [120, 135]
        background: "rgba(78, 115, 223, 0.1)"
        border: "#4e73df"
        fill: true
        tension: 0.3
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Tableau de bord" || cfg.Root != "web" || cfg.Base != "/dashboard/" {
		t.Errorf("Title/Root/Base = %q/%q/%q", cfg.Title, cfg.Root, cfg.Base)
	}
	if cfg.Build.OutDir != "public" || cfg.Build.ShouldEmptyOutDir() || !cfg.Build.Minify || !cfg.Build.Sourcemap {
		t.Errorf("Build = %+v", cfg.Build)
	}
	if cfg.Server.Port != 9090 || cfg.Server.ShouldOpen() {
		t.Errorf("Server = port %d open %v", cfg.Server.Port, cfg.Server.ShouldOpen())
	}
	if cfg.MissingContainers != "skip" {
		t.Errorf("MissingContainers = %q, want skip", cfg.MissingContainers)
	}

	if len(cfg.Charts) != 2 {
		t.Fatalf("len(Charts) = %d, want 2", len(cfg.Charts))
	}
	sync := cfg.Charts[0]
	if sync.Legend.Position != "bottom" || sync.Legend.Hidden {
		t.Errorf("charts[0].Legend = %+v", sync.Legend)
	}
	if !reflect.DeepEqual([]string(sync.Datasets[0].Background), []string{"#1cc88a", "#e74a3b"}) {
		t.Errorf("charts[0] background = %v", sync.Datasets[0].Background)
	}

	presences := cfg.Charts[1]
	if !presences.Legend.Hidden {
		t.Error("charts[1].Legend.Hidden = false, want true")
	}
	ds := presences.Datasets[0]
	if len(ds.Background) != 1 || ds.Border != "#4e73df" || !ds.Fill || ds.Tension != 0.3 {
		t.Errorf("charts[1] dataset = %+v", ds)
	}
}

func TestParse_FullConfigRoundTrip(t *testing.T) {
	yaml := `
title: Wigest
missing_containers: skip
charts:
  - container: chartProfils
    type: doughnut
    labels: [Développeurs, Designers, Managers]
    legend: hidden
    datasets:
      - label: Profils
        data: [55, 30, 15]
        background: ["#4e73df", "#1cc88a", "#36b9cc"]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, data)
	}
	if !reflect.DeepEqual(cfg, again) {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", again, cfg)
	}
}

func TestParse_HiddenLegendKeepsPosition(t *testing.T) {
	yaml := `
charts:
  - container: chartSync
    type: pie
    labels: [Synchronisés, En échec]
    legend:
      display: false
      position: left
    datasets:
      - label: Synchronisation
        data: [87, 13]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, data)
	}

	want := LegendConfig{Hidden: true, Position: "left"}
	if got := again.Charts[0].Legend; got != want {
		t.Errorf("Legend after round trip = %+v, want %+v\n%s", got, want, data)
	}
	if !reflect.DeepEqual(cfg, again) {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", again, cfg)
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	t.Setenv("CHARTBOARD_TITLE", "Recette")
	t.Setenv("CHARTBOARD_OUT", "build")

	yaml := `
title: ${CHARTBOARD_TITLE}
base: ${CHARTBOARD_BASE:-/app/}
build:
  out_dir: ${CHARTBOARD_OUT}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Recette" {
		t.Errorf("Title = %q, want Recette", cfg.Title)
	}
	if cfg.Base != "/app/" {
		t.Errorf("Base = %q, want /app/", cfg.Base)
	}
	if cfg.Build.OutDir != "build" {
		t.Errorf("Build.OutDir = %q, want build", cfg.Build.OutDir)
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	yaml := `
root: ${CHARTBOARD_UNSET_ROOT_VAR}
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for unset variable, got nil")
	}
	if !strings.Contains(err.Error(), "root") || !strings.Contains(err.Error(), "CHARTBOARD_UNSET_ROOT_VAR") {
		t.Errorf("error = %v, want mention of root and variable", err)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "port too high",
			yaml:    "server:\n  port: 70000\n",
			wantErr: "server.port must be between 1 and 65535",
		},
		{
			name:    "negative port",
			yaml:    "server:\n  port: -1\n",
			wantErr: "server.port must be between 1 and 65535",
		},
		{
			name:    "base without slash",
			yaml:    "base: /app\n",
			wantErr: "base must end with",
		},
		{
			name:    "blank out_dir",
			yaml:    "build:\n  out_dir: \"  \"\n",
			wantErr: "build.out_dir cannot be blank",
		},
		{
			name:    "out_dir equals root",
			yaml:    "root: web\nbuild:\n  out_dir: ./web\n",
			wantErr: "cannot be the source root",
		},
		{
			name:    "unknown policy",
			yaml:    "missing_containers: ignore\n",
			wantErr: "missing_containers",
		},
		{
			name: "chart without container",
			yaml: `
charts:
  - type: pie
    labels: [a]
    datasets: [{label: x, data: [1]}]
`,
			wantErr: "charts[0]: container is required",
		},
		{
			name: "unknown chart type",
			yaml: `
charts:
  - container: c
    type: radar
    labels: [a]
    datasets: [{label: x, data: [1]}]
`,
			wantErr: "charts[0] (c): unknown chart kind",
		},
		{
			name: "length mismatch",
			yaml: `
charts:
  - container: chartProfils
    type: doughnut
    labels: [a, b, c]
    datasets: [{label: x, data: [1, 2]}]
`,
			wantErr: "charts[0] (chartProfils)",
		},
		{
			name: "duplicate container",
			yaml: `
charts:
  - container: c
    type: bar
    labels: [a]
    datasets: [{label: x, data: [1]}]
  - container: c
    type: bar
    labels: [a]
    datasets: [{label: x, data: [1]}]
`,
			wantErr: "charts[1] (c): duplicate container",
		},
		{
			name: "unknown legend",
			yaml: `
charts:
  - container: c
    type: bar
    labels: [a]
    legend: middle
    datasets: [{label: x, data: [1]}]
`,
			wantErr: "unknown legend",
		},
		{
			name: "bad colour",
			yaml: `
charts:
  - container: c
    type: bar
    labels: [a]
    datasets: [{label: x, data: [1], background: "#zzz"}]
`,
			wantErr: "charts[0] (c): datasets[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Parse() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("title: [unclosed"))
	if err == nil {
		t.Fatal("Parse() expected error for invalid YAML, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("error = %v, want 'failed to parse YAML'", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartboard.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 2233\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 2233 {
		t.Errorf("Server.Port = %d, want 2233", cfg.Server.Port)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CHARTBOARD_SET", "value")
	t.Setenv("CHARTBOARD_EMPTY", "")

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "plain", false},
		{"${CHARTBOARD_SET}", "value", false},
		{"a-${CHARTBOARD_SET}-b", "a-value-b", false},
		{"${CHARTBOARD_EMPTY}", "", false},
		{"${CHARTBOARD_EMPTY:-fallback}", "", false},
		{"${CHARTBOARD_NOPE:-fallback}", "fallback", false},
		{"${CHARTBOARD_NOPE:-}", "", false},
		{"${CHARTBOARD_NOPE}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := expandEnvVars(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandEnvVars(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
