package prompt

import (
	"errors"
	"strings"

	"github.com/simonhull/userprompt/ui"
)

// Path is a filesystem path. Any text is accepted.
type Path string

func (p *Path) Prompt(s *Session, label, comment string) error {
	text, err := s.Line(label, comment)
	if err != nil {
		return err
	}
	*p = Path(text)
	return nil
}

func (p *Path) BuildForm(f *Form, label, comment string) error {
	text := string(*p)
	if f.Text(&text, label, comment) {
		*p = Path(text)
	}
	return nil
}

// FileOpen is the path of an existing file. The remaining fields only
// affect how a file dialog is presented.
type FileOpen struct {
	Path        string     `json:"path" yaml:"path"`
	Filter      *ui.Filter `json:"-" yaml:"-"`
	InitialDir  string     `json:"-" yaml:"-"`
	InitialFile string     `json:"-" yaml:"-"`
	Title       string     `json:"-" yaml:"-"`
}

// Prompt reads paths until one names an existing file.
func (o *FileOpen) Prompt(s *Session, label, comment string) error {
	path, err := s.filePath(label, comment, "That does not exist, please try again", true)
	if err != nil {
		return err
	}
	o.Path = path
	return nil
}

// BuildForm shows the path and a button opening an open-file dialog.
func (o *FileOpen) BuildForm(f *Form, label, comment string) error {
	f.filePicker(label, comment, o.request(ui.DialogOpen), &o.Path)
	if !exists(f.fs, o.Path) {
		return errors.New("Selected file does not exist")
	}
	return nil
}

func (o *FileOpen) request(mode ui.DialogMode) ui.DialogRequest {
	return ui.DialogRequest{
		Mode:        mode,
		Title:       o.Title,
		Filter:      o.Filter,
		InitialDir:  o.InitialDir,
		InitialFile: o.InitialFile,
	}
}

// FileCreate is the path of a file that does not exist yet.
type FileCreate struct {
	Path        string     `json:"path" yaml:"path"`
	Filter      *ui.Filter `json:"-" yaml:"-"`
	InitialDir  string     `json:"-" yaml:"-"`
	InitialFile string     `json:"-" yaml:"-"`
	Title       string     `json:"-" yaml:"-"`
}

// Prompt reads paths until one names a file that does not exist.
func (c *FileCreate) Prompt(s *Session, label, comment string) error {
	path, err := s.filePath(label, comment, "That already exists, please try again", false)
	if err != nil {
		return err
	}
	c.Path = path
	return nil
}

// BuildForm shows the path and a button opening a save-file dialog.
func (c *FileCreate) BuildForm(f *Form, label, comment string) error {
	req := (*FileOpen)(c).request(ui.DialogSave)
	f.filePicker(label, comment, req, &c.Path)
	if exists(f.fs, c.Path) {
		return errors.New("Selected file already exists")
	}
	return nil
}

func (s *Session) filePath(label, comment, rejected string, mustExist bool) (string, error) {
	s.Comment(comment)
	var path string
	err := s.retry(label, rejected, func() (bool, error) {
		text, err := s.readLine(label)
		if err != nil {
			return false, err
		}
		path = text
		return s.exists(text) == mustExist, nil
	})
	return path, err
}

func (f *Form) filePicker(label, comment string, req ui.DialogRequest, path *string) {
	f.Comment(comment)
	f.Heading(label)
	f.Label(*path)
	if f.FileDialog(strings.TrimSpace("Update "+label), req, path) {
		f.log.Debug("file selected", "label", label, "path", *path)
	}
}
