package tools

import "testing"

func TestVersionRegexp(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"subfinder version v2.6.3", "2.6.3"},
		{"puredns v2.1.1", "2.1.1"},
		{"dnsx 1.1.6", "1.1.6"},
		{"Nmap version 7.94 ( https://nmap.org )", "7.94"},
		{"no version here", ""},
	}
	for _, tt := range tests {
		got := ""
		if m := versionRe.FindStringSubmatch(tt.line); m != nil {
			got = m[1]
		}
		if got != tt.want {
			t.Errorf("version(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAllToolsHaveInstallHints(t *testing.T) {
	for _, tool := range All() {
		if tool.Binary == "" || tool.Install == "" {
			t.Errorf("tool %q missing binary or install hint", tool.Name)
		}
	}
}
