// Command twentyeight is the daily four-digit calculator puzzle.
package main

import (
	"os"

	"github.com/RobOwenKing/twenty-eight/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
