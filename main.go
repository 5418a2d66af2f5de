/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/taskman/cmd"
	"github.com/josephgoksu/taskman/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
