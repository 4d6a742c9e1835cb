package fakesendmail

import (
	"context"
	"fmt"
	"os"

	"github.com/lestrrat-go/slack"
)

// HookSlack posts every non-ok outcome to a Slack channel so an
// operator hears about blocked or failed mail without tailing logs.
type HookSlack struct{}

func (h *HookSlack) Name() string {
	return "slack"
}

func (h *HookSlack) Notify(msg string) error {
	username := "fakesendmail"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := os.Getenv("SLACK_TOKEN")
	if len(token) == 0 {
		return fmt.Errorf("missing SLACK_TOKEN, please set `SLACK_TOKEN`")
	}

	channel := os.Getenv("SLACK_CHANNEL")
	if len(channel) == 0 {
		return fmt.Errorf("missing SLACK_CHANNEL, please set `SLACK_CHANNEL`")
	}

	cl := slack.New(token)
	_, err := cl.Chat().PostMessage(channel).Username(username).Text(msg).Do(ctx)
	return err
}

func (h *HookSlack) AfterInit() {
}

func (h *HookSlack) AfterSave(d *AfterSaveData) {
	if d.Category == CategoryOK {
		return
	}
	err := h.Notify(fmt.Sprintf("`%s` quarantined as `%s`: %s (%s)", d.InvocationID, d.Category, d.Path, d.Detail))
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
	}
}

func (h *HookSlack) AfterDeliver(d *AfterDeliverData) {
	if d.Code == 0 {
		return
	}
	err := h.Notify(fmt.Sprintf("`%s` => `%s` exited %d (%s)", d.MailFrom, d.MailTo, d.Code, d.Elapse))
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
	}
}
