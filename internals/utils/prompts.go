package utils

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
)

// BoolPrompt asks a yes/no question. Ctrl+C aborts the program
func BoolPrompt(prompt *promptui.Prompt) bool {
	prompt.IsConfirm = true
	_, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			fmt.Println("Aborting")
			os.Exit(1)
		}
		return false
	}
	return true
}
