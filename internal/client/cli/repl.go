package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Go(ctx context.Context, path string) error
	SetType(ctx context.Context, t string) error
	SetTab(ctx context.Context, tab string) error
	Upload(ctx context.Context) error
	List(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Play(ctx context.Context, seconds string) error
	OpenPDF(ctx context.Context, id string) error
	Zoom(ctx context.Context, direction string) error
	Download(ctx context.Context, id string) error
	Preview(ctx context.Context, path string) error
}

const (
	helpLoggedOut = "Available commands: login, go <path>, preview <path>, exit"
	helpLoggedIn  = "Available commands: banner, news, go <path>, type <homepage|placement>, " +
		"tab <upload|view|slideshow>, upload, list, delete <id>, play [seconds], " +
		"pdf <id>, zoom <in|out>, download <id>, preview <path>, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the cmsadmin CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that take an argument print their
// usage when it is missing. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures as notices. Prompts inside handlers read from the same
// reader, so input is never buffered twice.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cms %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		needArg := func(usage string) bool {
			if arg == "" {
				printlnFn("Usage:", usage)
				return false
			}
			return true
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "go":
			if needArg("go <path>") {
				_ = a.Go(ctx, arg)
			}

		case "banner", "banners":
			_ = a.Go(ctx, "/home/banner")

		case "news":
			_ = a.Go(ctx, "/home/news")

		case "type":
			if needArg("type <homepage|placement>") {
				_ = a.SetType(ctx, arg)
			}

		case "tab":
			if needArg("tab <upload|view|slideshow>") {
				_ = a.SetTab(ctx, arg)
			}

		case "upload":
			_ = a.Upload(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "delete":
			if needArg("delete <id>") {
				_ = a.Delete(ctx, arg)
			}

		case "play":
			_ = a.Play(ctx, arg)

		case "pdf":
			if needArg("pdf <id>") {
				_ = a.OpenPDF(ctx, arg)
			}

		case "zoom":
			if needArg("zoom <in|out>") {
				_ = a.Zoom(ctx, arg)
			}

		case "download":
			if needArg("download <id>") {
				_ = a.Download(ctx, arg)
			}

		case "preview":
			if needArg("preview <path>") {
				_ = a.Preview(ctx, arg)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
