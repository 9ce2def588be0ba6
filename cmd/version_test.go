package cmd

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version must have a default")
	}
	if CommitSHA == "" || BuildDate == "" {
		t.Error("CommitSHA and BuildDate must have defaults")
	}
}

func TestVersionTemplate(t *testing.T) {
	if !strings.Contains(versionTemplate, "tidbcheck") {
		t.Error("version template does not mention tidbcheck")
	}
	if !strings.Contains(versionTemplate, "{{.Version}}") {
		t.Error("version template does not interpolate the version")
	}
	if rootCmd.Version == "" {
		t.Error("rootCmd.Version is not set")
	}
}
