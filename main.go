// Command spendlog is a terminal expense tracker.
package main

import "github.com/theirongolddev/spendlog/cmd"

func main() {
	cmd.Execute()
}
