package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ewskit/ewskit/pkg/ews"
	"github.com/ewskit/ewskit/pkg/names"
	"github.com/ewskit/ewskit/pkg/response"
	"github.com/ewskit/ewskit/pkg/soap"
)

// operation adapts one client method to the generic call interface.
type operation func(ctx context.Context, c *ews.Client, opts soap.Map) ([]response.Outcome, error)

// operations maps snake_case operation names to client methods.
// Operations with positional wire arguments read them from well-known
// option keys.
var operations = map[string]operation{
	"find_folder":   func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.FindFolder(ctx, o) },
	"get_folder":    func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.GetFolder(ctx, o) },
	"create_folder": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.CreateFolder(ctx, o) },
	"delete_folder": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.DeleteFolder(ctx, o) },
	"find_item":     func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.FindItem(ctx, o) },
	"get_item":      func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.GetItem(ctx, o) },
	"create_item":   func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.CreateItem(ctx, o) },
	"delete_item":   func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.DeleteItem(ctx, o) },
	"move_item":     func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.MoveItem(ctx, o) },
	"update_item":   func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.UpdateItem(ctx, o) },
	"resolve_names": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.ResolveNames(ctx, o) },
	"get_user_availability": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) {
		return c.GetUserAvailability(ctx, o)
	},
	"get_room_lists": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) {
		return c.GetRoomLists(ctx)
	},
	"get_rooms": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) {
		roomList, _ := o["room_list"].(string)
		return c.GetRooms(ctx, roomList)
	},
	"subscribe": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) { return c.Subscribe(ctx, o) },
	"unsubscribe": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) {
		id, _ := o["subscription_id"].(string)
		return c.Unsubscribe(ctx, id)
	},
	"get_events": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) {
		id, _ := o["subscription_id"].(string)
		watermark, _ := o["watermark"].(string)
		return c.GetEvents(ctx, id, watermark)
	},
	"get_streaming_events": func(ctx context.Context, c *ews.Client, o soap.Map) ([]response.Outcome, error) {
		var ids []string
		switch v := o["subscription_ids"].(type) {
		case []string:
			ids = v
		case []any:
			for _, member := range v {
				if s, ok := member.(string); ok {
					ids = append(ids, s)
				}
			}
		}
		timeout, _ := o["connection_timeout"].(int)
		return c.GetStreamingEvents(ctx, ids, timeout)
	},
}

var callCmd = &cobra.Command{
	Use:   "call <operation> [payload]",
	Short: "Execute an operation against the configured endpoint",
	Long: `Executes one web-service operation. The payload is inline YAML, or a
file reference prefixed with @. Operation names are snake_case:

  ewskit call get_room_lists
  ewskit call find_folder '{parent_folder_ids: [{distinguished_folder_id: {id: root}}]}'
  ewskit call get_item @payload.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	name := names.SnakeCase(args[0])
	op, ok := operations[name]
	if !ok {
		return fmt.Errorf("unknown operation %q (known: %s)", args[0], strings.Join(operationNames(), ", "))
	}

	opts := soap.Map{}
	if len(args) == 2 {
		raw := args[1]
		if strings.HasPrefix(raw, "@") {
			data, err := os.ReadFile(raw[1:])
			if err != nil {
				return fmt.Errorf("failed to read payload file: %w", err)
			}
			raw = string(data)
		}
		if err := yaml.Unmarshal([]byte(raw), &opts); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := promptConnection(cfg); err != nil {
		return err
	}

	client, err := ews.New(cfg, ews.WithLogger(newLogger(cfg)))
	if err != nil {
		return err
	}

	outcomes, err := op(cmd.Context(), client, opts)
	if err != nil {
		return err
	}
	return printOutcomes(outcomes)
}

func operationNames() []string {
	out := make([]string, 0, len(operations))
	for name := range operations {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// outcomeView is the printable form of one outcome.
type outcomeView struct {
	Tag     string `json:"tag" yaml:"tag"`
	Status  string `json:"status" yaml:"status"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func printOutcomes(outcomes []response.Outcome) error {
	views := make([]outcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		views = append(views, outcomeView{
			Tag:     o.Tag(),
			Status:  o.Status(),
			Code:    o.Code(),
			Message: o.Message(),
		})
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	var failed bool
	for i, v := range views {
		line := fmt.Sprintf("[%d] %s: %s", i, v.Tag, v.Status)
		if v.Code != "" {
			line += " " + v.Code
		}
		if v.Message != "" {
			line += " (" + v.Message + ")"
		}
		fmt.Println(line)
		if v.Status != response.ClassSuccess {
			failed = true
		}
	}
	if failed {
		return errors.New("one or more response messages did not succeed")
	}
	return nil
}
