// Command robddctl is a batch front end over the robdd package, exercising
// the façade's declare/eval/count/pick/dump/load/reorder/stats surface
// from the shell instead of from Go code. Grounded in the teacher pack's
// cmd/cli layout (junjiewwang-perf-analysis/cmd/cli/{main.go,cmd}).
package main

import "github.com/boolshare/robdd/cmd/robddctl/cmd"

func main() {
	cmd.Execute()
}
