// Command ggstudio runs the image studio service and its offline tools.
package main

import "github.com/gogpu/gg-studio/cmd/ggstudio/cmd"

func main() {
	cmd.Execute()
}
