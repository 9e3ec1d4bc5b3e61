package headhunter

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type Resumes struct {
	Items []*Resume
}

type Resume struct {
	Title string
	ID    string `json:"id,omitempty"`
}

type ResumeDetails struct {
	ID    string
	Title string
	Raw   map[string]any
}

// resumeBody is the part of a resume document used to build plain text.
type resumeBody struct {
	FirstName  string   `mapstructure:"first_name"`
	MiddleName string   `mapstructure:"middle_name"`
	LastName   string   `mapstructure:"last_name"`
	Title      string   `mapstructure:"title"`
	SkillSet   []string `mapstructure:"skill_set"`
	About      string   `mapstructure:"skills"`
	Experience []struct {
		Company     string `mapstructure:"company"`
		Position    string `mapstructure:"position"`
		Start       string `mapstructure:"start"`
		End         string `mapstructure:"end"`
		Description string `mapstructure:"description"`
	} `mapstructure:"experience"`
	Education struct {
		Level struct {
			Name string `mapstructure:"name"`
		} `mapstructure:"level"`
		Primary []struct {
			Name         string `mapstructure:"name"`
			Organization string `mapstructure:"organization"`
			Result       string `mapstructure:"result"`
			Year         int    `mapstructure:"year"`
		} `mapstructure:"primary"`
	} `mapstructure:"education"`
}

func (c *Client) GetMineResumes(ctx context.Context) (*Resumes, error) {
	return c.getResumes(ctx, mineResumID)
}

func (c *Client) getResumes(ctx context.Context, id string) (*Resumes, error) {
	apiURLMineResumes := fmt.Sprintf("%s/resumes/%s", c.APIURL, id)

	items, err := c.GetItems(ctx, apiURLMineResumes, nil)
	if err != nil {
		return nil, err
	}

	var resumes []*Resume
	if err = mapstructure.Decode(items, &resumes); err != nil {
		return nil, err
	}

	return &Resumes{
		Items: resumes,
	}, nil
}

func (r *Resumes) Len() int {
	return len(r.Items)
}

func (r *Resumes) Titles() []string {
	titles := make([]string, 0, len(r.Items))

	for _, v := range r.Items {
		titles = append(titles, v.Title)
	}

	return titles
}

func (r *Resumes) FindByTitle(title string) *Resume {
	for _, resume := range r.Items {
		if resume.Title == title {
			return resume
		}
	}

	return nil
}

func (c *Client) GetResumeDetails(ctx context.Context, id string) (*ResumeDetails, error) {
	if id == "" {
		return nil, fmt.Errorf("resume id is required")
	}

	apiURL := fmt.Sprintf("%s/resumes/%s", c.APIURL, id)

	var raw map[string]any
	if err := c.getJSON(ctx, apiURL, nil, &raw); err != nil {
		return nil, err
	}

	if raw == nil {
		raw = make(map[string]any)
	}

	return &ResumeDetails{
		ID:    valueAsString(raw["id"]),
		Title: valueAsString(raw["title"]),
		Raw:   raw,
	}, nil
}

// PlainText renders the resume as a text document: the name line first, then the title,
// a skills section and one line per position and per education entry.
func (d *ResumeDetails) PlainText() (string, error) {
	var body resumeBody
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &body,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return "", err
	}
	if err := decoder.Decode(d.Raw); err != nil {
		return "", fmt.Errorf("decode resume %s: %w", d.ID, err)
	}

	var b strings.Builder
	writeLine := func(parts ...string) {
		line := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		if line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	writeLine(body.FirstName, body.LastName)
	if body.Title == "" {
		body.Title = d.Title
	}
	writeLine(body.Title)

	if len(body.SkillSet) > 0 {
		b.WriteString("\nSkills: ")
		b.WriteString(strings.Join(body.SkillSet, ", "))
		b.WriteString("\n")
	}

	if about := strings.TrimSpace(body.About); about != "" {
		b.WriteString("\nAbout:\n")
		b.WriteString(about)
		b.WriteString("\n")
	}

	if len(body.Experience) > 0 {
		b.WriteString("\nExperience:\n")
		for _, job := range body.Experience {
			end := yearOf(job.End)
			if end == "" {
				end = "present"
			}
			writeLine(job.Position, "at", job.Company, yearOf(job.Start), "-", end)
		}
	}

	if len(body.Education.Primary) > 0 {
		b.WriteString("\nEducation:\n")
		for _, edu := range body.Education.Primary {
			year := ""
			if edu.Year > 0 {
				year = fmt.Sprint(edu.Year)
			}
			writeLine(body.Education.Level.Name, edu.Result, edu.Name, edu.Organization, year)
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// yearOf returns the year of a YYYY-MM-DD date.
func yearOf(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func valueAsString(v any) string {
	if v == nil {
		return ""
	}

	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
