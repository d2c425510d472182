package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"help-queue/internal/status"
	"help-queue/security"
	"help-queue/services"
)

// command is one dispatch-table entry: required argument count, the
// invocation form reported when arguments are missing, and the action.
// Arity is validated before the action runs, so a bad invocation never
// reaches the password prompt.
type command struct {
	args int
	form string
	run  func(h *CommandHandler, args []string) error
}

var commands = map[string]command{
	"add":         {args: 1, form: "add <netid>", run: (*CommandHandler).cmdAdd},
	"pop":         {form: "pop", run: (*CommandHandler).cmdPop},
	"view":        {form: "view", run: (*CommandHandler).cmdView},
	"checkin":     {args: 1, form: "checkin <netid>", run: (*CommandHandler).cmdCheckin},
	"clear":       {form: "clear", run: (*CommandHandler).cmdClear},
	"stats":       {args: 1, form: "stats <filename>", run: (*CommandHandler).cmdStats},
	"reset":       {form: "reset", run: (*CommandHandler).cmdReset},
	"lock":        {form: "lock", run: (*CommandHandler).cmdLock},
	"unlock":      {form: "unlock", run: (*CommandHandler).cmdUnlock},
	"help":        {form: "help", run: (*CommandHandler).cmdHelp},
	"quit":        {form: "quit", run: (*CommandHandler).cmdQuit},
	"load":        {args: 1, form: "load <filename>", run: (*CommandHandler).cmdLoad},
	"save":        {args: 1, form: "save <filename>", run: (*CommandHandler).cmdSave},
	"add_staff":   {args: 1, form: "add_staff <netid>", run: (*CommandHandler).cmdAddStaff},
	"load_roster": {args: 1, form: "load_roster <path_to_file>", run: (*CommandHandler).cmdLoadRoster},
}

// CommandHandler tokenizes input lines and routes them into the services.
type CommandHandler struct {
	queue  *services.QueueService
	roster *services.RosterService
	gate   *security.Gate
	out    io.Writer
	errc   *color.Color
	warnc  *color.Color
	quit   bool
}

func NewCommandHandler(queue *services.QueueService, roster *services.RosterService, gate *security.Gate, out io.Writer, colorize bool) *CommandHandler {
	errc := color.New(color.FgRed)
	warnc := color.New(color.FgYellow, color.Bold)
	if !colorize {
		errc.DisableColor()
		warnc.DisableColor()
	}
	return &CommandHandler{
		queue:  queue,
		roster: roster,
		gate:   gate,
		out:    out,
		errc:   errc,
		warnc:  warnc,
	}
}

// Handle processes one input line and reports whether the REPL should
// terminate. Failures are printed uniformly and never end the loop.
func (h *CommandHandler) Handle(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		h.printError(status.ErrEmptyCommand)
		return false
	}
	cmd, ok := commands[strings.ToLower(parts[0])]
	if !ok {
		h.printError(status.ErrUnknownCommand)
		return false
	}
	args := parts[1:]
	if len(args) < cmd.args {
		h.printError(&status.UsageError{Form: cmd.form})
		return false
	}
	if err := cmd.run(h, args); err != nil {
		h.printError(err)
		return false
	}
	return h.quit
}

func (h *CommandHandler) printError(err error) {
	h.errc.Fprintf(h.out, "Error: %s\n", err)
}

func (h *CommandHandler) cmdAdd(args []string) error {
	pos, err := h.queue.Add(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Added to queue in position %d\n", pos)
	return nil
}

func (h *CommandHandler) cmdPop(args []string) error {
	res, err := h.queue.Pop()
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Popped: %q after %v in queue.\n", res.Name, res.TimeInQueue)
	return nil
}

func (h *CommandHandler) cmdView(args []string) error {
	entries, locked := h.queue.View()
	if len(entries) == 0 {
		fmt.Fprintln(h.out, "Queue is empty.")
		return nil
	}
	if locked {
		h.warnc.Fprintln(h.out, "QUEUE IS LOCKED!")
	}
	for _, e := range entries {
		fmt.Fprintf(h.out, "%d: %s for %v\n", e.Position, e.Name, e.Waiting)
	}
	return nil
}

func (h *CommandHandler) cmdCheckin(args []string) error {
	if err := h.queue.Checkin(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s checked in.\n", args[0])
	return nil
}

func (h *CommandHandler) cmdClear(args []string) error {
	if err := h.gate.Authenticate(); err != nil {
		return err
	}
	// Clear the screen and home the cursor.
	fmt.Fprint(h.out, "\033[2J\033[H")
	return nil
}

func (h *CommandHandler) cmdStats(args []string) error {
	if err := h.queue.Stats(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Stats saved.")
	return nil
}

func (h *CommandHandler) cmdReset(args []string) error {
	return h.queue.Reset()
}

func (h *CommandHandler) cmdLock(args []string) error {
	if err := h.queue.Lock(); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Queue is locked.")
	return nil
}

func (h *CommandHandler) cmdUnlock(args []string) error {
	if err := h.queue.Unlock(); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Queue is unlocked.")
	return nil
}

func (h *CommandHandler) cmdHelp(args []string) error {
	fmt.Fprintln(h.out, `"add <netid>" - adds the specified netid to the queue.
"pop" - removes the student at the head of the queue.
"view" - views the queue.
"checkin <netid>" - records a staff check-in.
"clear" - clears the screen.
"stats <filename>" - dumps the full state, pretty-printed.
"reset" - clears histories, the queue, and the lock flag.
"lock" / "unlock" - block or allow new queue entries.
"load <filename>" - replaces the state from a file.
"save <filename>" - dumps the full state to a file.
"add_staff <netid>" - registers a staff member.
"load_roster <path_to_file>" - reimports the student roster.
"quit" - saves a backup and exits.`)
	return nil
}

func (h *CommandHandler) cmdQuit(args []string) error {
	if err := h.queue.Shutdown(); err != nil {
		return err
	}
	h.quit = true
	return nil
}

func (h *CommandHandler) cmdLoad(args []string) error {
	if err := h.queue.Load(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Loaded from file.")
	return nil
}

func (h *CommandHandler) cmdSave(args []string) error {
	if err := h.queue.Save(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "State saved.")
	return nil
}

func (h *CommandHandler) cmdAddStaff(args []string) error {
	if err := h.queue.AddStaff(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Staff member %s added.\n", args[0])
	return nil
}

func (h *CommandHandler) cmdLoadRoster(args []string) error {
	count, err := h.roster.LoadRoster(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Imported %d students.\n", count)
	return nil
}
