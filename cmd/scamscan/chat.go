package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"scamshield/internal/domain/services"
)

func readAllLimited(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, 4*services.MaxTextLength))
}

func newChatCmd(a *app) *cobra.Command {
	var about string

	cmd := &cobra.Command{
		Use:   "chat [MESSAGE]",
		Short: "Ask the safety assistant (interactive without a message)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			session := a.chat.NewSession(a.lang)
			if about != "" {
				result, err := a.scans.ScanURL(ctx, about, a.lang)
				if err != nil {
					return err
				}
				session.AttachScan(result)
			}

			if len(args) == 1 {
				resp, err := session.Send(ctx, args[0])
				if err != nil {
					return err
				}
				return a.out.chat(resp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Ask a question about scams or safe browsing. Type \"exit\" to quit.")
			in := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !in.Scan() {
					fmt.Fprintln(out)
					return in.Err()
				}
				line := strings.TrimSpace(in.Text())
				switch strings.ToLower(line) {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				resp, err := session.Send(ctx, line)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Error:", describeError(err))
					continue
				}
				if err := a.out.chat(resp); err != nil {
					return err
				}
			}
		},
	}
	cmd.Flags().StringVar(&about, "about", "", "scan this URL first and discuss the result")
	return cmd
}

func newTipsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Show general safety tips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.chat.Tips(cmd.Context(), a.lang)
			if err != nil {
				return err
			}
			return a.out.tips(resp)
		},
	}
}
