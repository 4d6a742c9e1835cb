package fakesendmail

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultSendmail      string  = "/usr/sbin/ssmtp"
	defaultLogDir        string  = "/var/log/fakesendmail"
	defaultSpamThreshold float64 = 0.45
)

// Config is the constructor-level configuration. The whole argument
// vector belongs to the real transport, so runtime configuration comes
// from an optional YAML file plus environment variables; env always
// wins.
type Config struct {
	Sendmail            string        `yaml:"sendmail"`
	LogDir              string        `yaml:"log_dir"`
	SpamThreshold       float64       `yaml:"spam_threshold"`
	AllowSenders        []string      `yaml:"allow_senders"`
	Classifier          string        `yaml:"classifier"` // bayes or spamc
	SpamcPath           string        `yaml:"spamc_path"`
	Storage             string        `yaml:"storage"` // file, mysql or sqlite
	Notify              *NotifyConfig `yaml:"notify"`
	NotifyOnDeliverFail bool          `yaml:"notify_on_deliver_fail"`
}

// LoadConfig loads defaults, then the YAML file named by
// SENDMAIL_CONFIG if set, then environment overrides.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	if path := os.Getenv("SENDMAIL_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %s", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %s", err)
		}
	}

	cfg.applyEnvVars()
	return cfg, nil
}

// AllowList builds the static sender allow list, nil when the feature
// is disabled.
func (c *Config) AllowList() AllowList {
	return NewAllowList(c.AllowSenders...)
}

func (c *Config) applyDefaults() {
	c.Sendmail = defaultSendmail
	c.LogDir = defaultLogDir
	c.SpamThreshold = defaultSpamThreshold
	c.Classifier = "bayes"
}

func (c *Config) applyEnvVars() {
	if v := os.Getenv("SENDMAIL_PATH"); v != "" {
		c.Sendmail = v
	}
	if v := os.Getenv("SENDMAIL_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("SENDMAIL_SPAM_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.SpamThreshold = t
		}
	}
	if v := os.Getenv("SENDMAIL_ALLOW_SENDERS"); v != "" {
		c.AllowSenders = splitList(v)
	}
	if v := os.Getenv("SENDMAIL_CLASSIFIER"); v != "" {
		c.Classifier = strings.ToLower(v)
	}
	if v := os.Getenv("SPAMC_PATH"); v != "" {
		c.SpamcPath = v
	}
	if v := os.Getenv("AUDIT_STORAGE"); v != "" {
		c.Storage = strings.ToLower(v)
	}
	if v := os.Getenv("NOTIFY_ON_DELIVER_FAIL"); v != "" {
		c.NotifyOnDeliverFail = v == "1" || strings.ToLower(v) == "true"
	}

	from := os.Getenv("NOTIFY_FROM")
	to := os.Getenv("NOTIFY_TO")
	if from != "" && to != "" {
		n := &NotifyConfig{From: from, To: to}
		if path := os.Getenv("NOTIFY_TEMPLATE_FILE"); path != "" {
			if data, err := os.ReadFile(path); err == nil {
				n.Template = string(data)
			}
		}
		c.Notify = n
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
