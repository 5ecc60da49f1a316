package ai

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// DefaultInstruction is used when neither a prompt file nor a configured
// instruction is available.
const DefaultInstruction = "You are a helpful assistant."

// Prompt holds the mutable system instruction. The admin can replace it at
// runtime via /setprompt; the replacement lasts for the current process only.
type Prompt struct {
	mu   sync.RWMutex
	text string
}

// LoadPrompt resolves the initial system instruction: the prompt file wins
// when set and readable, then the inline configured instruction, then the
// built-in default.
func LoadPrompt(file, inline string, log *slog.Logger) *Prompt {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Warn("Failed to read instruction file, falling back", "path", file, "error", err)
		} else if txt := strings.TrimSpace(string(data)); txt != "" {
			log.Info("Loaded system instruction from file", "path", file)
			return &Prompt{text: txt}
		}
	}

	if txt := strings.TrimSpace(inline); txt != "" {
		return &Prompt{text: txt}
	}
	return &Prompt{text: DefaultInstruction}
}

// Get returns the current system instruction.
func (p *Prompt) Get() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text
}

// Set replaces the system instruction for the running process.
func (p *Prompt) Set(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text = text
}
