package reader

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

//
// Input-event scripts. Each line schedules one input event for the
// simulated controller:
//
//   # taps 500ms apart
//   1000 tap
//   1500 tap
//   3000 mode down
//   3100 mode up
//   4000 turn -2
//   6000 sync high
//   6010 sync low
//
// Times are milliseconds from the start of the render. Blank lines and
// '#' comments are ignored.
//

type EventKind int

const (
	EventTap EventKind = iota
	EventModeDown
	EventModeUp
	EventSyncHigh
	EventSyncLow
	EventTurn
)

type Event struct {
	AtMs  int
	Kind  EventKind
	Steps int // Only used by EventTurn.
}

func ReadScript(filename string) ([]Event, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		event, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filename, lineNo)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}

	sortEvents(events)
	return events, nil
}

func parseLine(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Event{}, errors.Errorf("expected '<ms> <event>', got %q", line)
	}

	atMs, err := strconv.Atoi(fields[0])
	if err != nil || atMs < 0 {
		return Event{}, errors.Errorf("bad timestamp %q", fields[0])
	}

	switch fields[1] {
	case "tap":
		return Event{AtMs: atMs, Kind: EventTap}, nil

	case "mode":
		if len(fields) < 3 {
			return Event{}, errors.New("'mode' needs 'down' or 'up'")
		}
		switch fields[2] {
		case "down":
			return Event{AtMs: atMs, Kind: EventModeDown}, nil
		case "up":
			return Event{AtMs: atMs, Kind: EventModeUp}, nil
		}
		return Event{}, errors.Errorf("bad mode edge %q", fields[2])

	case "sync":
		if len(fields) < 3 {
			return Event{}, errors.New("'sync' needs 'high' or 'low'")
		}
		switch fields[2] {
		case "high":
			return Event{AtMs: atMs, Kind: EventSyncHigh}, nil
		case "low":
			return Event{AtMs: atMs, Kind: EventSyncLow}, nil
		}
		return Event{}, errors.Errorf("bad sync edge %q", fields[2])

	case "turn":
		if len(fields) < 3 {
			return Event{}, errors.New("'turn' needs a step count")
		}
		steps, err := strconv.Atoi(fields[2])
		if err != nil || steps == 0 {
			return Event{}, errors.Errorf("bad step count %q", fields[2])
		}
		return Event{AtMs: atMs, Kind: EventTurn, Steps: steps}, nil
	}

	return Event{}, errors.Errorf("unknown event %q", fields[1])
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].AtMs < events[j].AtMs
	})
}
