package cmd

import (
	"bytes"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/viper"

	"github.com/boolshare/robdd"
)

// envelope is the CLI's own on-disk session format: the core dump text
// (robdd's own wire format, untouched) plus a sidecar mapping from
// user-chosen root names to their position in the dump's roots array,
// since the core persistence format (spec §6) only numbers roots, it does
// not name them.
type envelope struct {
	Dump  json.RawMessage `json:"dump"`
	Roots map[string]int  `json:"roots"`
}

// session is the live, in-memory state one robddctl invocation operates
// on: a name table plus every named root built so far.
type session struct {
	names *robdd.Names
	roots map[string]robdd.Node
}

// newSession builds an empty manager configured from viper (flags, env,
// config file), per the layered configuration precedence in root.go.
func newSession() *session {
	var opts []robdd.Option
	if size := viper.GetInt("nodesize"); size > 0 {
		opts = append(opts, robdd.Nodesize(size))
	}
	if ratio := viper.GetInt("cacheratio"); ratio > 0 {
		opts = append(opts, robdd.Cacheratio(ratio))
	}
	opts = append(opts, robdd.AutoReorder(viper.GetBool("reordering")))
	m, err := robdd.New(0, opts...)
	if err != nil {
		panic(err)
	}
	return &session{names: robdd.NewNames(m), roots: make(map[string]robdd.Node)}
}

// loadSession reads path, or returns a fresh empty session if path does
// not exist yet (the first command in a pipeline creates it).
func loadSession(path string) (*session, error) {
	if path == "" {
		return newSession(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newSession(), nil
	}
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	s := newSession()
	order, err := s.names.Load(bytes.NewReader(env.Dump), true)
	if err != nil {
		return nil, err
	}
	for name, idx := range env.Roots {
		if idx < 0 || idx >= len(order) {
			continue
		}
		s.roots[name] = order[idx]
	}
	return s, nil
}

// saveSession writes every named root to path in the envelope format.
func saveSession(path string, s *session) error {
	names := make([]string, 0, len(s.roots))
	roots := make([]robdd.Node, 0, len(s.roots))
	rootIndex := make(map[string]int, len(s.roots))
	for name, n := range s.roots {
		rootIndex[name] = len(roots)
		names = append(names, name)
		roots = append(roots, n)
	}
	var buf bytes.Buffer
	if err := s.names.Dump(&buf, roots...); err != nil {
		return err
	}
	env := envelope{Dump: json.RawMessage(buf.Bytes()), Roots: rootIndex}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
