package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Whoami(context.Context) error { return f.record("whoami") }
func (f *fakeExec) Go(_ context.Context, p string) error { return f.record("go", p) }
func (f *fakeExec) SetType(_ context.Context, t string) error { return f.record("type", t) }
func (f *fakeExec) SetTab(_ context.Context, t string) error { return f.record("tab", t) }
func (f *fakeExec) Upload(context.Context) error { return f.record("upload") }
func (f *fakeExec) List(context.Context) error { return f.record("list") }
func (f *fakeExec) Delete(_ context.Context, id string) error { return f.record("delete", id) }
func (f *fakeExec) Play(_ context.Context, s string) error { return f.record("play", s) }
func (f *fakeExec) OpenPDF(_ context.Context, id string) error {
	return f.record("pdf", id)
}
func (f *fakeExec) Zoom(_ context.Context, d string) error { return f.record("zoom", d) }
func (f *fakeExec) Download(_ context.Context, id string) error {
	return f.record("download", id)
}
func (f *fakeExec) Preview(_ context.Context, p string) error { return f.record("preview", p) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	capturePrintln(t)

	input := strings.Join([]string{
		"login",
		"banner",
		"type placement",
		"tab view",
		"",
		"list",
		"delete 7",
		"play",
		"play 10",
		"news",
		"upload",
		"pdf 3",
		"zoom in",
		"download 3",
		"preview ./a.png",
		"go /home/news",
		"whoami",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"go /home/banner",
		"type placement",
		"tab view",
		"list",
		"delete 7",
		"play",
		"play 10",
		"go /home/news",
		"upload",
		"pdf 3",
		"zoom in",
		"download 3",
		"preview ./a.png",
		"go /home/news",
		"whoami",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := capturePrintln(t)

	input := "delete\ntype\ntab\npdf\nzoom\ndownload\npreview\ngo\nfoobar\nquit\nlist\n"
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader(input)))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: delete <id>")
	assert.Contains(t, *lines, "Usage: zoom <in|out>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "/" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\n")))

	assert.Contains(t, *lines, helpLoggedOut)
	assert.Contains(t, *lines, helpLoggedIn)
	assert.Contains(t, *lines, "cms />")
}
