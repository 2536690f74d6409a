// services/generation_service.go - AI post and image generation
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"postforge/apperr"
	"postforge/models"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// GeneratedPost holds the structured fields parsed out of the model's
// free-text response.
type GeneratedPost struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Hashtags string `json:"hashtags"`
}

// GeneratePostRequest selects the brand, persona and theme the copy is
// written for. All three are optional; the prompt is not.
type GeneratePostRequest struct {
	BrandID   *uint  `json:"brand_id"`
	PersonaID *uint  `json:"persona_id"`
	ThemeID   *uint  `json:"theme_id"`
	Prompt    string `json:"prompt"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerationService calls an OpenAI-compatible API for post text and images.
// Upstream failures are reported once, never retried.
type GenerationService struct {
	db     *gorm.DB
	client *resty.Client
	model  string
}

func NewGenerationService(db *gorm.DB) *GenerationService {
	baseURL := os.Getenv("OPENAI_API_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetAuthToken(os.Getenv("OPENAI_API_KEY")).
		SetHeader("Content-Type", "application/json")

	return &GenerationService{db: db, client: client, model: model}
}

// GeneratePost asks the text API for marketing copy and stores the parsed
// result. A draft row is written first; an upstream failure marks it failed
// and surfaces the error unwrapped.
func (s *GenerationService) GeneratePost(callerID, teamID uint, req GeneratePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", apperr.ErrValidation)
	}

	prompt, err := s.buildPrompt(teamID, req)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		TeamID:    teamID,
		BrandID:   req.BrandID,
		PersonaID: req.PersonaID,
		ThemeID:   req.ThemeID,
		Prompt:    req.Prompt,
		Status:    models.PostStatusDraft,
		CreatedBy: callerID,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}

	text, err := s.complete(prompt)
	if err != nil {
		s.db.Model(post).Update("status", models.PostStatusFailed)
		return nil, err
	}

	generated := ParseGeneratedPost(text)
	updates := map[string]interface{}{
		"title":    generated.Title,
		"body":     generated.Body,
		"hashtags": generated.Hashtags,
		"status":   models.PostStatusGenerated,
	}
	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}

	post.Title = generated.Title
	post.Body = generated.Body
	post.Hashtags = generated.Hashtags
	post.Status = models.PostStatusGenerated
	return post, nil
}

// GenerateImage renders the first image for a post. The post must belong to
// the caller's team.
func (s *GenerationService) GenerateImage(callerID, teamID, postID uint, prompt string) (*models.GeneratedImage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", apperr.ErrValidation)
	}

	var post models.Post
	if err := s.db.Where("id = ? AND team_id = ?", postID, teamID).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: post %d", apperr.ErrNotFound, postID)
		}
		return nil, err
	}

	url, err := s.renderImage(prompt)
	if err != nil {
		return nil, err
	}

	image := &models.GeneratedImage{
		PostID:    post.ID,
		Prompt:    prompt,
		URL:       url,
		CreatedBy: callerID,
	}
	if err := s.db.Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// EditImage applies a chat instruction to an existing revision and appends
// the result to the revision chain. The revision's post must belong to the
// caller's team.
func (s *GenerationService) EditImage(callerID, teamID, imageID uint, instruction string) (*models.GeneratedImage, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: edit instruction is required", apperr.ErrValidation)
	}

	var parent models.GeneratedImage
	err := s.db.
		Joins("JOIN posts ON posts.id = generated_images.post_id").
		Where("generated_images.id = ? AND posts.team_id = ?", imageID, teamID).
		First(&parent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: image %d", apperr.ErrNotFound, imageID)
		}
		return nil, err
	}

	prompt := parent.Prompt + ". " + strings.TrimSpace(instruction)
	url, err := s.renderImage(prompt)
	if err != nil {
		return nil, err
	}

	image := &models.GeneratedImage{
		PostID:    parent.PostID,
		ParentID:  &parent.ID,
		Prompt:    prompt,
		URL:       url,
		CreatedBy: callerID,
	}
	if err := s.db.Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

func (s *GenerationService) complete(prompt string) (string, error) {
	var out chatResponse
	resp, err := s.client.R().
		SetBody(chatRequest{
			Model: s.model,
			Messages: []chatMessage{
				{Role: "system", Content: "You are a marketing copywriter. Answer with sections labelled Title:, Body: and Hashtags:."},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("text generation failed: %s", msg)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("text generation returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func (s *GenerationService) renderImage(prompt string) (string, error) {
	var out imageResponse
	resp, err := s.client.R().
		SetBody(imageRequest{
			Model:  "dall-e-3",
			Prompt: prompt,
			N:      1,
			Size:   "1024x1024",
		}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/images/generations")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("image generation failed: %s", msg)
	}
	if len(out.Data) == 0 {
		return "", fmt.Errorf("image generation returned no data")
	}
	return out.Data[0].URL, nil
}

// buildPrompt folds the selected brand, persona and theme into the user's
// prompt. Referenced rows must belong to the caller's team.
func (s *GenerationService) buildPrompt(teamID uint, req GeneratePostRequest) (string, error) {
	var parts []string

	if req.BrandID != nil {
		var brand models.Brand
		if err := s.db.Where("id = ? AND team_id = ?", *req.BrandID, teamID).First(&brand).Error; err != nil {
			return "", fmt.Errorf("%w: brand %d", apperr.ErrNotFound, *req.BrandID)
		}
		parts = append(parts, fmt.Sprintf("Brand: %s. %s Tone: %s.", brand.Name, brand.Description, brand.Tone))
	}

	if req.PersonaID != nil {
		var persona models.Persona
		if err := s.db.Where("id = ? AND team_id = ?", *req.PersonaID, teamID).First(&persona).Error; err != nil {
			return "", fmt.Errorf("%w: persona %d", apperr.ErrNotFound, *req.PersonaID)
		}
		parts = append(parts, fmt.Sprintf("Audience: %s. %s Interests: %s. Pain points: %s.",
			persona.Name, persona.Description, persona.Interests, persona.PainPoints))
	}

	if req.ThemeID != nil {
		var theme models.Theme
		if err := s.db.Where("id = ? AND team_id = ?", *req.ThemeID, teamID).First(&theme).Error; err != nil {
			return "", fmt.Errorf("%w: theme %d", apperr.ErrNotFound, *req.ThemeID)
		}
		parts = append(parts, fmt.Sprintf("Theme: %s. Keywords: %s.", theme.Name, theme.Keywords))
	}

	parts = append(parts, "Write a social media post. "+req.Prompt)
	return strings.Join(parts, "\n"), nil
}

// ParseGeneratedPost scans the model's free-text response for Title:, Body:
// and Hashtags: section headers. Unlabelled text lands in the body; when no
// headers are present at all, the first line becomes the title.
func ParseGeneratedPost(text string) GeneratedPost {
	var out GeneratedPost
	var bodyLines []string
	section := ""
	sawHeader := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		switch {
		case strings.HasPrefix(lower, "title:"):
			section = "title"
			sawHeader = true
			out.Title = strings.TrimSpace(trimmed[len("title:"):])
		case strings.HasPrefix(lower, "body:") || strings.HasPrefix(lower, "content:"):
			section = "body"
			sawHeader = true
			rest := strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
			if rest != "" {
				bodyLines = append(bodyLines, rest)
			}
		case strings.HasPrefix(lower, "hashtags:") || strings.HasPrefix(lower, "tags:"):
			section = "hashtags"
			sawHeader = true
			out.Hashtags = strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
		default:
			switch section {
			case "title":
				if trimmed != "" && out.Title == "" {
					out.Title = trimmed
				}
			case "hashtags":
				if trimmed != "" {
					out.Hashtags = strings.TrimSpace(out.Hashtags + " " + trimmed)
				}
			default:
				bodyLines = append(bodyLines, line)
			}
		}
	}

	out.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))

	if !sawHeader && out.Body != "" {
		// No sections at all: treat the first line as the title.
		lines := strings.SplitN(out.Body, "\n", 2)
		out.Title = strings.TrimSpace(lines[0])
		if len(lines) > 1 {
			out.Body = strings.TrimSpace(lines[1])
		} else {
			out.Body = ""
		}
	}

	return out
}
