package main

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/osse101/ContestBot_Go/internal/event"
)

const defaultDeadLetterPath = "logs/event_deadletter.jsonl"

// DeadLettersCommand summarizes the events the server gave up delivering
type DeadLettersCommand struct{}

func (c *DeadLettersCommand) Name() string {
	return "deadletters"
}

func (c *DeadLettersCommand) Description() string {
	return "Summarize the event dead-letter file ([path], default EVENT_DEAD_LETTER_PATH)"
}

func (c *DeadLettersCommand) Run(args []string) error {
	path := cmp.Or(os.Getenv("EVENT_DEAD_LETTER_PATH"), defaultDeadLetterPath)
	if len(args) > 0 {
		path = args[0]
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		PrintSuccess("No dead letters (%s does not exist)", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := event.ReadDeadLetters(f)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Dead letters (%s)", path))
	if len(entries) == 0 {
		PrintSuccess("File is empty")
		return nil
	}
	return printDeadLetterSummary(entries)
}

func printDeadLetterSummary(entries []event.DeadLetterEntry) error {
	counts := make(map[event.Type]int)
	for _, e := range entries {
		counts[e.Event.Type]++
	}
	types := make([]event.Type, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.Sort(types)

	tw := tabwriter.NewWriter(console.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCOUNT")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%d\n", t, counts[t])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// decisions carry a dedupe key downstream consumers can reconcile against
	for _, e := range entries {
		if e.Event.Type != event.ContributionDecided {
			continue
		}
		p, err := event.DecodePayload[event.ContributionDecidedPayloadV1](e.Event.Payload)
		if err != nil {
			PrintWarning("undecodable decision at %s: %v", e.Timestamp.Format("2006-01-02 15:04:05"), err)
			continue
		}
		PrintWarning("decision %s (team %s, %+d points) after %d attempts: %s",
			p.DedupeKey(), p.TeamID, p.PointsDelta, e.Attempts, e.LastError)
	}
	return nil
}
