package robdd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// edgeToken renders a signed node id the way the dump format requires:
// the terminal edges +1/-1 spell "T"/"F", everything else is a decimal
// string, per spec §4.7/§6.
func edgeToken(n Node) string {
	switch n {
	case True:
		return "T"
	case False:
		return "F"
	}
	return strconv.FormatInt(int64(n), 10)
}

func varName(names []string, v int32) string {
	if v < int32(len(names)) && names[v] != "" {
		return names[v]
	}
	return fmt.Sprintf("x%d", v)
}

// Dump writes every node reachable from roots (the manager's whole live
// table, if roots is empty) to w as the textual dump format from spec
// §4.7/§6: a JSON object whose "level_of_var" field is the variable-to-
// level bijection, whose "roots" field lists the given edges (renumbered
// under the on-disk ids), and one streamed "\"<id>\": [level, low, high]"
// record per line thereafter.
func (m *Manager) Dump(w io.Writer, names []string, roots ...Node) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	levelOfVar := make(map[string]int32, m.varnum)
	for v := int32(0); v < m.varnum; v++ {
		if !m.declared[v] {
			continue
		}
		levelOfVar[varName(names, v)] = m.levelOfVar[v]
	}

	// Renumber reachable nodes densely from 2, in an order that places a
	// child before any of its parents, so Load can always find a child id
	// already declared by the time it reads the parent's record.
	var order []int32
	onDisk := make(map[int32]int32)
	var walk func(Node)
	walk = func(n Node) {
		id := n.id()
		if id == oneID {
			return
		}
		if _, done := onDisk[id]; done {
			return
		}
		nd := m.nodes[id]
		walk(nd.low)
		walk(nd.high)
		onDisk[id] = int32(len(order)) + 2
		order = append(order, id)
	}
	if len(roots) == 0 {
		for id := int32(2); id < int32(len(m.nodes)); id++ {
			nd := m.nodes[id]
			if entry, live := m.unique[tripleKey{nd.level, nd.low, nd.high}]; live && entry == id {
				walk(Node(id))
			}
		}
	} else {
		for _, r := range roots {
			walk(r)
		}
	}

	remap := func(n Node) Node {
		if n.id() == oneID {
			return n
		}
		v := Node(onDisk[n.id()])
		if n.complemented() {
			return -v
		}
		return v
	}

	diskRoots := make([]string, len(roots))
	for i, r := range roots {
		diskRoots[i] = quoteToken(edgeToken(remap(r)))
	}

	bw := bufio.NewWriter(w)
	header, err := json.Marshal(levelOfVar)
	if err != nil {
		return wrapError(IOError, err, "dump: encoding level_of_var")
	}
	fmt.Fprintf(bw, "{\n\"level_of_var\": %s,\n", header)
	fmt.Fprintf(bw, "\"roots\": [%s]", strings.Join(diskRoots, ", "))
	for _, id := range order {
		nd := m.nodes[id]
		fmt.Fprintf(bw, ",\n%q: [%d, %s, %s]", strconv.Itoa(int(onDisk[id])), nd.level,
			quoteToken(edgeToken(remap(nd.low))), quoteToken(edgeToken(remap(nd.high))))
	}
	fmt.Fprint(bw, "\n}\n")
	return bw.Flush()
}

// quoteToken wraps the terminal literals in double quotes (the format
// mixes bare signed ints with the quoted sentinels "T"/"F"); plain integer
// tokens are left unquoted, matching the wire grammar in spec §6.
func quoteToken(tok string) string {
	if tok == "T" || tok == "F" {
		return strconv.Quote(tok)
	}
	return tok
}

// Load reads a dump produced by Dump into this manager. existing lets a
// caller (typically the façade's name table) hand in variables that are
// already declared under a name the dump also uses, so Load reuses the
// same index instead of declaring a duplicate; pass nil to have every
// named variable declared fresh. When declareAtRecordedLevel is true,
// newly declared variables are additionally moved, by ReorderTo, to the
// levels recorded in the file, and automatic reordering is disabled for
// the duration of the load, per spec §4.7 ("declare any missing
// variables, optionally at the recorded levels, disabling dynamic reorder
// during load"). Returned roots are fresh handles local to this manager,
// in the same order as the file; the returned map records the (possibly
// newly assigned) index of every variable the dump named.
func (m *Manager) Load(r io.Reader, declareAtRecordedLevel bool, existing map[string]int32) ([]Node, map[string]int32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, wrapError(IOError, err, "load: reading dump")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, wrapError(IOError, err, "load: malformed dump")
	}
	levelRaw, ok := raw["level_of_var"]
	if !ok {
		return nil, nil, newError(IOError, "load: dump missing required \"level_of_var\"")
	}
	rootsRaw, ok := raw["roots"]
	if !ok {
		return nil, nil, newError(IOError, "load: dump missing required \"roots\"")
	}
	var levelOfVar map[string]int32
	if err := json.Unmarshal(levelRaw, &levelOfVar); err != nil {
		return nil, nil, wrapError(IOError, err, "load: malformed level_of_var")
	}
	var diskRoots []json.RawMessage
	if err := json.Unmarshal(rootsRaw, &diskRoots); err != nil {
		return nil, nil, wrapError(IOError, err, "load: malformed roots")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	byLevel := make(map[int32]string, len(levelOfVar))
	for name, lvl := range levelOfVar {
		byLevel[lvl] = name
	}
	n := int32(len(levelOfVar))
	varByName := make(map[string]int32, n)
	wasAutoReorder := m.cfg.autoReorder
	if declareAtRecordedLevel {
		m.cfg.autoReorder = false
	}
	for lvl := int32(0); lvl < n; lvl++ {
		name, ok := byLevel[lvl]
		if !ok {
			m.cfg.autoReorder = wasAutoReorder
			return nil, nil, newError(IOError, "load: level_of_var is not a contiguous 0..%d range", n-1)
		}
		if idx, known := existing[name]; known {
			varByName[name] = idx
			continue
		}
		idx, err := m.declareVar()
		if err != nil {
			m.cfg.autoReorder = wasAutoReorder
			return nil, nil, err
		}
		varByName[name] = idx
	}
	if declareAtRecordedLevel {
		order := make(map[int32]int32, len(varByName))
		for name, idx := range varByName {
			order[idx] = levelOfVar[name]
		}
		for v := int32(0); v < m.varnum; v++ {
			if _, named := order[v]; !named {
				order[v] = m.levelOfVar[v]
			}
		}
		err := m.reorderTo(order)
		m.cfg.autoReorder = wasAutoReorder
		if err != nil {
			return nil, nil, err
		}
	}

	built := make(map[int32]Node)
	var build func(diskID int32) (Node, error)
	build = func(diskID int32) (Node, error) {
		if diskID == oneID {
			return True, nil
		}
		if r, ok := built[diskID]; ok {
			return r, nil
		}
		tok := strconv.Itoa(int(diskID))
		body, ok := raw[tok]
		if !ok {
			return 0, newError(IOError, "load: missing node record %q", tok)
		}
		var fields [3]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return 0, wrapError(IOError, err, "load: malformed record %q", tok)
		}
		var recordedLevel int32
		if err := json.Unmarshal(fields[0], &recordedLevel); err != nil {
			return 0, wrapError(IOError, err, "load: malformed level in record %q", tok)
		}
		name, ok := byLevel[recordedLevel]
		if !ok {
			return 0, newError(IOError, "load: record %q names unknown level %d", tok, recordedLevel)
		}
		varIdx := varByName[name]

		low, err := buildEdge(fields[1], build)
		if err != nil {
			return 0, err
		}
		high, err := buildEdge(fields[2], build)
		if err != nil {
			return 0, err
		}
		res, err := m.findOrAdd(m.levelOfVar[varIdx], low, high)
		if err != nil {
			return 0, err
		}
		built[diskID] = res
		return res, nil
	}

	roots := make([]Node, len(diskRoots))
	for i, rr := range diskRoots {
		edge, err := buildEdge(rr, build)
		if err != nil {
			return nil, nil, err
		}
		roots[i] = edge
	}
	return roots, varByName, nil
}

// buildEdge decodes one JSON token from a dump (a quoted "T"/"F"/decimal
// string, or a bare JSON number) and resolves it via build.
func buildEdge(raw json.RawMessage, build func(int32) (Node, error)) (Node, error) {
	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '"' {
		var tok string
		if err := json.Unmarshal(raw, &tok); err != nil {
			return 0, wrapError(IOError, err, "load: malformed edge token")
		}
		switch tok {
		case "T":
			return True, nil
		case "F":
			return False, nil
		}
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return 0, wrapError(IOError, err, "load: malformed edge token %q", tok)
		}
		return resolveDiskEdge(int32(v), build)
	}
	var v int32
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, wrapError(IOError, err, "load: malformed edge token")
	}
	return resolveDiskEdge(v, build)
}

func resolveDiskEdge(v int32, build func(int32) (Node, error)) (Node, error) {
	id := v
	neg := false
	if id < 0 {
		id, neg = -id, true
	}
	n, err := build(id)
	if err != nil {
		return 0, err
	}
	if neg {
		return -n, nil
	}
	return n, nil
}
