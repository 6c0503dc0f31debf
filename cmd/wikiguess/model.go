package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wikiguess/internal/game"
	"github.com/robalobadob/wikiguess/internal/source"
)

// model is the terminal client state. The engine is only touched from
// Update, which bubbletea runs on one goroutine.
type model struct {
	src      source.Source
	engine   *game.Engine
	strip    bool
	input    string
	status   string
	failed   bool
	guesses  int
	width    int
	quitting bool
}

func newModel(src source.Source, engine *game.Engine, strip bool) model {
	return model{src: src, engine: engine, strip: strip, width: 80}
}

// articleMsg carries a freshly loaded article, or the error loading it.
type articleMsg struct {
	article source.Article
	err     error
}

func (m model) loadArticle() tea.Msg {
	a, err := m.src.Next(context.Background())
	return articleMsg{article: a, err: err}
}

func (m model) Init() tea.Cmd { return m.loadArticle }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case articleMsg:
		return m.handleArticle(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleArticle(msg articleMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.failed = true
		m.status = fmt.Sprintf("could not load an article: %v", msg.err)
		return m, nil
	}
	a := source.Prepare(msg.article, m.strip)
	m.engine.LoadArticle(a.Title, a.Text, a.Hint)
	m.input, m.guesses, m.failed = "", 0, false
	m.status = a.Hint
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyCtrlN:
		return m, m.loadArticle
	case tea.KeyCtrlR:
		if err := m.engine.Reveal(); err != nil {
			return m, nil
		}
		a, _ := m.engine.Article()
		m.status = "Revealed: " + a.Title
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if m.input != "" {
			_, size := utf8.DecodeLastRuneInString(m.input)
			m.input = m.input[:len(m.input)-size]
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	guess := m.input
	m.input = ""
	res, err := m.engine.SubmitGuess(guess)
	if err != nil {
		m.status = "no article loaded yet"
		return m, nil
	}
	if res.Kind != game.GuessRejected {
		m.guesses++
	}
	m.status = describe(res, guess)
	if m.engine.IsRoundOver() {
		a, _ := m.engine.Article()
		m.status += fmt.Sprintf(": %q in %d guesses. ctrl+n for another.", a.Title, m.guesses)
	}
	return m, nil
}

func describe(res game.GuessResult, guess string) string {
	switch res.Kind {
	case game.GuessTitleMatch:
		return "You guessed the title!"
	case game.GuessWordMatch:
		return fmt.Sprintf("%q appears %d times", strings.TrimSpace(guess), res.Occurrences)
	case game.GuessAlreadyFound:
		return fmt.Sprintf("%q is already revealed", strings.TrimSpace(guess))
	case game.GuessNotFound:
		return fmt.Sprintf("%q is not in the article", strings.TrimSpace(guess))
	default:
		return "type a word first"
	}
}

// renderText turns the engine's units into styled text. Hidden tokens are
// blocks as long as the word.
func renderText(units []game.RenderUnit) string {
	var b strings.Builder
	for _, u := range units {
		switch {
		case u.Kind == game.UnitLiteral:
			b.WriteString(u.Text)
		case !u.Revealed:
			b.WriteString(hiddenStyle.Render(strings.Repeat("█", utf8.RuneCountInString(u.Text))))
		case u.InTitle:
			b.WriteString(titleWordStyle.Render(u.Text))
		default:
			b.WriteString(revealedStyle.Render(u.Text))
		}
	}
	return b.String()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("wikiguess"))
	b.WriteString("\n")

	if m.engine.State() == game.StateNone {
		if m.failed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(infoStyle.Render("loading article..."))
		}
		b.WriteString("\n")
		return b.String()
	}

	width := m.width - 8
	if width < 20 {
		width = 20
	}
	b.WriteString(boxStyle.Width(width).Render(renderText(m.engine.RenderUnits())))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("found %d/%d · guesses %d", m.engine.FoundCount(), m.engine.TotalWords(), m.guesses)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString("> " + m.input + "\n")
	b.WriteString(infoStyle.Render("enter guess · ctrl+r reveal · ctrl+n new article · esc quit"))
	b.WriteString("\n")
	return b.String()
}
