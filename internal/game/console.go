package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console messages.
const (
	msgEnterBalance = "Enter your balance:"
	msgStartBalance = "Your start balance is %d\n"
	msgPush         = "Push!"
	msgLose         = "You lose!"
	msgBalance      = "Your balance is %d\n"
	msgContinue     = "Do you want continue? (y/n): "
	msgYesNo        = "Please enter 'y' or 'n'"
	msgFinal        = "Bye! Your final balance is %d\n"
)

// Console reads player input line by line and writes game messages.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole wraps r and w. All reads share one buffer, so a Console must
// be the only reader of r.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

// ReadBalance consumes one line and parses it as a non-negative integer.
// Unparseable input, including end of input, yields fallback.
func (c *Console) ReadBalance(fallback uint64) uint64 {
	line, err := c.readLine()
	if err != nil {
		return fallback
	}
	balance, err := strconv.ParseUint(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return fallback
	}
	return balance
}

// WaitTrigger consumes one line of any content. It fails only when the
// input is exhausted or unreadable.
func (c *Console) WaitTrigger() error {
	_, err := c.readLine()
	return err
}

// AskYesNo prompts until the player answers y or n, case-insensitively.
// Other answers print guidance and prompt again. Returns io.EOF once the
// input is exhausted.
func (c *Console) AskYesNo() (bool, error) {
	for {
		fmt.Fprint(c.out, msgContinue)

		line, err := c.readLine()
		if err != nil {
			return false, err
		}

		switch strings.TrimSpace(line) {
		case "y", "Y":
			return true, nil
		case "n", "N":
			return false, nil
		default:
			fmt.Fprintln(c.out, msgYesNo)
		}
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned before io.EOF is reported.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
