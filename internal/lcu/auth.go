package lcu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrProcessNotFound     = errors.New("league client process not found")
)

const (
	portFlag  = "--app-port="
	tokenFlag = "--remoting-auth-token="
)

// Credentials holds the LCU connection details
type Credentials struct {
	ProcessName string
	PID         string
	Port        string
	Password    string
	Protocol    string
}

// LoadCredentials reads the lockfile at path when one is configured and
// otherwise discovers the running client process.
func LoadCredentials(ctx context.Context, lockfile string) (*Credentials, error) {
	if lockfile != "" {
		return ParseLockfile(lockfile)
	}
	return Discover(ctx)
}

// processName returns the UX process name for the host platform.
func processName(goos string) (string, error) {
	switch goos {
	case "windows":
		return "LeagueClientUx.exe", nil
	case "darwin":
		return "LeagueClientUx", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Discover finds the LeagueClientUx process and reads the port and auth
// token from its command line.
func Discover(ctx context.Context) (*Credentials, error) {
	name, err := processName(runtime.GOOS)
	if err != nil {
		return nil, err
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil || pname != name {
			continue
		}
		args, err := p.CmdlineSliceWithContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s command line: %w", name, err)
		}
		creds, err := ParseCommandLine(args)
		if err != nil {
			return nil, err
		}
		creds.ProcessName = pname
		creds.PID = fmt.Sprint(p.Pid)
		return creds, nil
	}

	return nil, ErrProcessNotFound
}

// ParseCommandLine extracts the port and auth token from the client's
// arguments. Arguments may arrive split or as a single string.
func ParseCommandLine(args []string) (*Credentials, error) {
	creds := &Credentials{Protocol: "https"}
	for _, field := range strings.Fields(strings.Join(args, " ")) {
		field = strings.Trim(field, `"'`)
		switch {
		case strings.HasPrefix(field, portFlag):
			creds.Port = strings.TrimPrefix(field, portFlag)
		case strings.HasPrefix(field, tokenFlag):
			creds.Password = strings.TrimPrefix(field, tokenFlag)
		}
	}

	if creds.Port == "" {
		return nil, fmt.Errorf("%w: no %s argument", ErrProcessNotFound, strings.TrimSuffix(portFlag, "="))
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("%w: no %s argument", ErrProcessNotFound, strings.TrimSuffix(tokenFlag, "="))
	}
	return creds, nil
}

// ParseLockfile reads and parses the lockfile content
func ParseLockfile(path string) (*Credentials, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	// Lockfile format: LeagueClient:pid:port:password:protocol
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) != 5 {
		return nil, fmt.Errorf("invalid lockfile format: expected 5 parts, got %d", len(parts))
	}

	return &Credentials{
		ProcessName: parts[0],
		PID:         parts[1],
		Port:        parts[2],
		Password:    parts[3],
		Protocol:    parts[4],
	}, nil
}
