package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFixtureServer(t *testing.T) *httptest.Server {
	return newPageServer(t, "neko.html")
}

func newPageServer(t *testing.T, name string) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("..", "..", "pkg", "yourei", "testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	srv := newFixtureServer(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "plain text",
			args: []string{"-plain", "猫"},
			want: "吾輩は猫である。名前はまだ無い。猫が好きだ。どこで生れたか&とんと見当がつかぬ。\n吾輩は猫である\n\n" +
				"黒い猫が庭を歩いている。\n\n",
		},
		{
			name: "emphasize",
			args: []string{"-plain", "-e", "猫"},
			want: "吾輩は【猫】である。名前はまだ無い。【猫】が好きだ。どこで生れたか&とんと見当がつかぬ。\n吾輩は【猫】である\n\n" +
				"黒い【猫】が庭を歩いている。\n\n",
		},
		{
			name: "furigana and emphasize after word",
			args: []string{"-plain", "猫", "-f", "-emphasize"},
			want: "吾輩は【猫《ねこ》】である。名前はまだ無い。【猫《ねこ》】が好きだ。どこで生れたか&とんと見当がつかぬ。\n吾輩は【猫】である\n\n" +
				"黒い【猫】が庭を歩いている。\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-url", srv.URL}, tt.args...)
			if err := run(context.Background(), args, &stdout, &stderr); err != nil {
				t.Fatalf("run failed: %v\nstderr:\n%s", err, stderr.String())
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("unexpected output:\ngot  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestRunInflectedForm(t *testing.T) {
	srv := newPageServer(t, "taberu.html")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-url", srv.URL, "-plain", "-f", "-e", "食べる"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v\nstderr:\n%s", err, stderr.String())
	}
	want := "寿司を【食《た》べた】のですが、まだ足りない。\nTom &amp; Jerry <Vol.2>\n\n" +
		"朝ご飯を【食べる】。\n\n"
	if got := stdout.String(); got != want {
		t.Errorf("unexpected output:\ngot  %q\nwant %q", got, want)
	}
}

func TestRunANSI(t *testing.T) {
	srv := newFixtureServer(t)
	t.Setenv("NO_COLOR", "")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-url", srv.URL, "-f", "-e", "猫"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "\x1b[32m猫\x1b[4mねこ\x1b[24m\x1b[0mが好きだ。"
	if !strings.Contains(stdout.String(), want) {
		t.Errorf("output %q lacks %q", stdout.String(), want)
	}
}

func TestRunVerbose(t *testing.T) {
	srv := newFixtureServer(t)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-url", srv.URL, "-v", "-plain", "-e", "ねこ"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	logs := stderr.String()
	for _, want := range []string{"Fetching " + srv.URL, "exact match only", "Extracted 2 examples"} {
		if !strings.Contains(logs, want) {
			t.Errorf("stderr lacks %q:\n%s", want, logs)
		}
	}
}

func TestRunErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing word", []string{"-e"}, "please provide a WORD"},
		{"two words", []string{"猫", "犬"}, "unexpected argument"},
		{"bad flag", []string{"-nope", "猫"}, "flag provided but not defined"},
		{"fetch failure", []string{"-url", srv.URL, "猫"}, "search examples"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected output: %q", stdout.String())
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, &stdout, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: yourei") {
		t.Errorf("usage not printed: %q", stderr.String())
	}
}
