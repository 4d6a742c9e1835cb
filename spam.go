package fakesendmail

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/navossoc/bayesian"
)

const (
	classSpam bayesian.Class = "spam"
	classHam  bayesian.Class = "ham"

	// ModelDirName holds the persisted bayesian model under the log root.
	ModelDirName  string = "bayesian_model"
	modelFileName string = "model.gob"
)

// Classifier scores a raw message text. Scores are bounded to [0, 1];
// anything above the configured threshold is treated as spam.
type Classifier interface {
	Score(text string) (float64, error)
}

// IsSpam applies the threshold to a score.
func IsSpam(score, threshold float64) bool {
	return score > threshold
}

// BayesClassifier is the default scorer: a naive Bayes model persisted
// under the log root and created on demand when missing.
type BayesClassifier struct {
	ModelPath string
}

func NewBayesClassifier(logdir string) *BayesClassifier {
	return &BayesClassifier{ModelPath: filepath.Join(logdir, ModelDirName, modelFileName)}
}

func (b *BayesClassifier) Score(text string) (float64, error) {
	c, err := b.classifier()
	if err != nil {
		return 0, err
	}
	scores, _, _ := c.ProbScores(tokenize(text))
	return scores[0], nil
}

// Learn folds one document into the model and persists it. Used to
// seed fresh models and by operators tuning from quarantined copies.
func (b *BayesClassifier) Learn(text string, spam bool) error {
	c, err := b.classifier()
	if err != nil {
		return err
	}
	class := classHam
	if spam {
		class = classSpam
	}
	c.Learn(tokenize(text), class)
	return c.WriteToFile(b.ModelPath)
}

func (b *BayesClassifier) classifier() (*bayesian.Classifier, error) {
	if _, err := os.Stat(b.ModelPath); err == nil {
		c, err := bayesian.NewClassifierFromFile(b.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("model load error: %s", err)
		}
		return c, nil
	}

	if err := os.MkdirAll(filepath.Dir(b.ModelPath), 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll error: %s", err)
	}

	// A fresh model gets one seed document per class so probabilities
	// stay defined before any real training.
	c := bayesian.NewClassifier(classSpam, classHam)
	c.Learn([]string{"unsolicited"}, classSpam)
	c.Learn([]string{"correspondence"}, classHam)
	if err := c.WriteToFile(b.ModelPath); err != nil {
		return nil, fmt.Errorf("model write error: %s", err)
	}
	return c, nil
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// SpamcClassifier shells out to a SpamAssassin spamc binary with -c
// and converts its `score/required` reply to a [0, 1] score.
type SpamcClassifier struct {
	Path string
}

func (s *SpamcClassifier) Score(text string) (float64, error) {
	path := s.Path
	if path == "" {
		path = "spamc"
	}

	cmd := exec.Command(path, "-c")
	cmd.Stdin = strings.NewReader(text)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// spamc exits 1 on spam, still printing the score line.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 0, fmt.Errorf("spamc run: %s", err)
		}
	}

	var score, required float64
	if _, err := fmt.Sscanf(string(bytes.TrimSpace(out)), "%f/%f", &score, &required); err != nil {
		return 0, fmt.Errorf("failed to parse spamc output: %s", err)
	}
	if required <= 0 {
		return 0, fmt.Errorf("spamc reported non-positive required score %f", required)
	}

	ratio := score / required
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio, nil
}
