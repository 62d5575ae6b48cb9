package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samvad-hq/mock-interview-client/pkg/interview"
	"github.com/spf13/cobra"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := c.coach.Auth().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) newRegisterCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := c.coach.Auth().Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) newQuestionCmd() *cobra.Command {
	var historyPath, jobTitle string
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Ask for the next interview question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr := interview.Transcript{ChatHistory: interview.ChatHistory{}}
			if historyPath != "" {
				var err error
				if tr, err = interview.LoadTranscript(historyPath); err != nil {
					return err
				}
			}
			if jobTitle == "" {
				jobTitle = tr.JobTitle
			}
			raw, err := c.coach.Interviews().GetInterviewQuestion(cmd.Context(), tr.ChatHistory, jobTitle)
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "Transcript file (YAML or JSON) with the conversation so far")
	cmd.Flags().StringVar(&jobTitle, "job-title", "", "Role being interviewed for (defaults to the transcript's)")
	return cmd
}

func (c *cli) newFeedbackCmd() *cobra.Command {
	var historyPath string
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Get feedback on the last answer in a transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := interview.LoadTranscript(historyPath)
			if err != nil {
				return err
			}
			raw, err := c.coach.Interviews().GetFeedback(cmd.Context(), tr.ChatHistory)
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "Transcript file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("history")
	return cmd
}

func (c *cli) newChatCmd() *cobra.Command {
	var historyPath string
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the general assistant",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history := interview.ChatHistory{}
			if historyPath != "" {
				tr, err := interview.LoadTranscript(historyPath)
				if err != nil {
					return err
				}
				history = tr.ChatHistory
			}
			if msg := strings.TrimSpace(strings.Join(args, " ")); msg != "" {
				history = history.Append(interview.Message{Role: interview.RoleUser, Content: msg})
			}
			if len(history) == 0 {
				return fmt.Errorf("nothing to send: pass a message or --history")
			}
			raw, err := c.coach.Interviews().Chat(cmd.Context(), history)
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "Transcript file (YAML or JSON)")
	return cmd
}

func (c *cli) newInterviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interviews",
		Short: "Manage interviews stored on the backend",
	}

	var page, size int
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored interviews, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := c.coach.Interviews().ListInterviews(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}
	list.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	list.Flags().IntVar(&size, "size", 10, "Page size (1-100)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored interview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := c.coach.Interviews().GetInterview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored interview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := c.coach.Interviews().DeleteInterview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}

	var historyPath, jobTitle string
	save := &cobra.Command{
		Use:   "save",
		Short: "Store a transcript on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := interview.LoadTranscript(historyPath)
			if err != nil {
				return err
			}
			if jobTitle == "" {
				jobTitle = tr.JobTitle
			}
			raw, err := c.coach.Interviews().SaveInterview(cmd.Context(), jobTitle, tr.ChatHistory)
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}
	save.Flags().StringVar(&historyPath, "history", "", "Transcript file (YAML or JSON)")
	save.Flags().StringVar(&jobTitle, "job-title", "", "Role interviewed for (defaults to the transcript's)")
	_ = save.MarkFlagRequired("history")

	cmd.AddCommand(list, get, del, save)
	return cmd
}

func (c *cli) newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run a multi-turn interview kept on this machine",
	}

	var jobTitle string
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a session and print the first question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.coach.StartSession(cmd.Context(), jobTitle)
			if err != nil {
				return err
			}
			q, _ := s.LastQuestion()
			return printJSON(cmd, map[string]string{"id": s.ID, "question": q})
		},
	}
	start.Flags().StringVar(&jobTitle, "job-title", "", "Role being interviewed for")

	answer := &cobra.Command{
		Use:   "answer <id> <answer...>",
		Short: "Answer the current question; prints feedback and the next question",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			turn, err := c.coach.Answer(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return printJSON(cmd, turn)
		},
	}

	finish := &cobra.Command{
		Use:   "finish <id>",
		Short: "Save the session on the backend and remove it locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := c.coach.FinishSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd, raw)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a local session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.coach.Session(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, s)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List local sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := c.coach.Sessions()
			if err != nil {
				return err
			}
			type summary struct {
				ID        string `json:"id"`
				JobTitle  string `json:"jobTitle"`
				Messages  int    `json:"messages"`
				UpdatedAt string `json:"updatedAt"`
			}
			out := make([]summary, 0, len(sessions))
			for _, s := range sessions {
				out = append(out, summary{
					ID:        s.ID,
					JobTitle:  s.JobTitle,
					Messages:  len(s.ChatHistory),
					UpdatedAt: s.UpdatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			return printJSON(cmd, out)
		},
	}

	discard := &cobra.Command{
		Use:   "discard <id>",
		Short: "Delete a local session without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.coach.DiscardSession(args[0])
		},
	}

	export := &cobra.Command{
		Use:   "export <id> <path>",
		Short: "Write a session to a transcript file (.yaml or .json)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.coach.Session(args[0])
			if err != nil {
				return err
			}
			tr := interview.Transcript{JobTitle: s.JobTitle, ChatHistory: s.ChatHistory}
			return tr.WriteFile(args[1])
		},
	}

	cmd.AddCommand(start, answer, finish, show, list, discard, export)
	return cmd
}

// printRaw writes a response body exactly as the backend sent it.
func printRaw(cmd *cobra.Command, raw json.RawMessage) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
