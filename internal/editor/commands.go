package editor

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrMalformedURL rejects link and media insertion with an empty or
// unparseable URL. The command is a no-op; the toolbar re-prompts instead
// of inserting a broken reference.
var ErrMalformedURL = errors.New("editor: malformed or empty url")

// ErrUnknownCommand rejects names outside the closed command set.
var ErrUnknownCommand = errors.New("editor: unknown command")

// CommandName identifies a formatting or insertion command. The set is
// closed; anything else is rejected at the dispatcher boundary.
type CommandName string

const (
	CmdBold            CommandName = "bold"
	CmdItalic          CommandName = "italic"
	CmdStrikethrough   CommandName = "strikethrough"
	CmdInlineCode      CommandName = "inlineCode"
	CmdClearFormatting CommandName = "clearFormatting"
	CmdHeading1        CommandName = "heading1"
	CmdHeading2        CommandName = "heading2"
	CmdHeading3        CommandName = "heading3"
	CmdHeading4        CommandName = "heading4"
	CmdHeading5        CommandName = "heading5"
	CmdHeading6        CommandName = "heading6"
	CmdParagraph       CommandName = "paragraph"
	CmdBlockquote      CommandName = "blockquote"
	CmdCodeBlock       CommandName = "codeBlock"
	CmdBulletList      CommandName = "bulletList"
	CmdOrderedList     CommandName = "orderedList"
	CmdAlignLeft       CommandName = "alignLeft"
	CmdAlignCenter     CommandName = "alignCenter"
	CmdAlignRight      CommandName = "alignRight"
	CmdAlignJustify    CommandName = "alignJustify"
	CmdInsertLink      CommandName = "insertLink"
	CmdInsertImage     CommandName = "insertImage"
	CmdInsertButton    CommandName = "insertButton"
	CmdInsertVideo     CommandName = "insertVideoPlaceholder"
	CmdInsertAudio     CommandName = "insertAudioPlaceholder"
	CmdInsertRule      CommandName = "insertHorizontalRule"
	CmdUndo            CommandName = "undo"
	CmdRedo            CommandName = "redo"
)

// Command is a single user action from the toolbar or a keyboard shortcut.
// URL, Text and Alt are only read by the insertion commands.
type Command struct {
	Name CommandName
	URL  string
	Text string
	Alt  string
}

// Dispatcher translates commands into document mutations on the surface,
// and routes undo/redo through the history stack.
type Dispatcher struct {
	surface *Surface
	history *History
}

func NewDispatcher(surface *Surface, history *History) *Dispatcher {
	return &Dispatcher{surface: surface, history: history}
}

// Dispatch applies cmd to the current selection. Inline commands toggle,
// block type commands select, insertion commands validate their URL first.
// A failed validation mutates nothing.
func (d *Dispatcher) Dispatch(cmd Command) error {
	switch cmd.Name {
	case CmdBold:
		d.surface.toggleMark(MarkBold)
	case CmdItalic:
		d.surface.toggleMark(MarkItalic)
	case CmdStrikethrough:
		d.surface.toggleMark(MarkStrike)
	case CmdInlineCode:
		d.surface.toggleMark(MarkCode)
	case CmdClearFormatting:
		d.surface.clearFormatting()
	case CmdHeading1, CmdHeading2, CmdHeading3, CmdHeading4, CmdHeading5, CmdHeading6:
		level := int(cmd.Name[len(cmd.Name)-1] - '0')
		d.surface.setBlockType(BlockHeading, level)
	case CmdParagraph:
		d.surface.setBlockType(BlockParagraph, 0)
	case CmdBlockquote:
		d.surface.setBlockType(BlockBlockquote, 0)
	case CmdCodeBlock:
		d.surface.setBlockType(BlockCodeBlock, 0)
	case CmdBulletList:
		d.surface.setBlockType(BlockBulletList, 0)
	case CmdOrderedList:
		d.surface.setBlockType(BlockOrderedList, 0)
	case CmdAlignLeft:
		d.surface.setAlign(AlignLeft)
	case CmdAlignCenter:
		d.surface.setAlign(AlignCenter)
	case CmdAlignRight:
		d.surface.setAlign(AlignRight)
	case CmdAlignJustify:
		d.surface.setAlign(AlignJustify)
	case CmdInsertLink:
		if err := validateURL(cmd.URL); err != nil {
			return err
		}
		d.surface.applyLink(cmd.URL, cmd.Text)
	case CmdInsertImage:
		if err := validateURL(cmd.URL); err != nil {
			return err
		}
		d.surface.insertBlock(Block{Type: BlockImage, Src: cmd.URL, Alt: cmd.Alt})
	case CmdInsertButton:
		if err := validateURL(cmd.URL); err != nil {
			return err
		}
		label := cmd.Text
		if label == "" {
			label = cmd.URL
		}
		d.surface.insertBlock(Block{Type: BlockButton, Src: cmd.URL, Label: label})
	case CmdInsertVideo:
		if err := validateURL(cmd.URL); err != nil {
			return err
		}
		d.surface.insertBlock(Block{Type: BlockVideo, Src: cmd.URL})
	case CmdInsertAudio:
		if err := validateURL(cmd.URL); err != nil {
			return err
		}
		d.surface.insertBlock(Block{Type: BlockAudio, Src: cmd.URL})
	case CmdInsertRule:
		d.surface.insertBlock(Block{Type: BlockHorizontalRule})
	case CmdUndo:
		if snapshot, ok := d.history.Undo(); ok {
			return d.surface.SetHTML(snapshot)
		}
	case CmdRedo:
		if snapshot, ok := d.history.Redo(); ok {
			return d.surface.SetHTML(snapshot)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return ErrMalformedURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrMalformedURL, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrMalformedURL, raw)
	}
	return nil
}
