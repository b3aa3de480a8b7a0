package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"markova/internal/domain"
	"markova/internal/domain/jsoncfg"
	"markova/internal/infra"
	"markova/internal/sqlinline"
)

// CampaignRepositoryPG implements domain.CampaignRepository. Posts, stories
// and reels are child rows keyed by campaign id.
type CampaignRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewCampaignRepository(sql infra.SQLExecutor) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{sql: sql}
}

const defaultCampaignListLimit = 50

// Save writes the campaign and all of its children. If a child insert fails
// the parent is removed again so no partial campaign stays behind.
func (r *CampaignRepositoryPG) Save(ctx context.Context, c *domain.Campaign) (string, error) {
	ensureID(&c.ID)
	if c.Status == "" {
		c.Status = domain.CampaignStatusDraft
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertCampaign,
		c.ID,
		c.UserID,
		c.BrandID,
		c.Title,
		c.Objective,
		c.Audience,
		c.TargetMarket,
		c.ContentDialect,
		c.Language,
		c.Status,
		jsoncfg.MustMarshal(c.VisualPrefs),
	)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return "", err
	}
	if err := r.saveChildren(ctx, c); err != nil {
		if _, delErr := r.sql.Exec(ctx, sqlinline.QDeleteCampaign, c.ID); delErr != nil {
			return "", fmt.Errorf("%w (cleanup: %v)", err, delErr)
		}
		return "", err
	}
	return c.ID, nil
}

func (r *CampaignRepositoryPG) saveChildren(ctx context.Context, c *domain.Campaign) error {
	for i := range c.Posts {
		p := &c.Posts[i]
		ensureID(&p.ID)
		p.CampaignID = c.ID
		if _, err := r.sql.Exec(ctx, sqlinline.QInsertCampaignPost,
			p.ID, p.CampaignID, p.PostNumber, p.Title, p.CaptionAR, p.CaptionEN,
			p.HashtagsAR, p.HashtagsEN, p.CTA, p.DesignNotes, p.ImageURL,
		); err != nil {
			return fmt.Errorf("insert post %d: %w", p.PostNumber, err)
		}
	}
	for i := range c.Stories {
		s := &c.Stories[i]
		ensureID(&s.ID)
		s.CampaignID = c.ID
		if _, err := r.sql.Exec(ctx, sqlinline.QInsertCampaignStory,
			s.ID, s.CampaignID, s.StoryNumber, s.Content, s.InteractiveElement,
		); err != nil {
			return fmt.Errorf("insert story %d: %w", s.StoryNumber, err)
		}
	}
	for i := range c.Reels {
		rl := &c.Reels[i]
		ensureID(&rl.ID)
		rl.CampaignID = c.ID
		if _, err := r.sql.Exec(ctx, sqlinline.QInsertCampaignReel,
			rl.ID, rl.CampaignID, rl.ReelNumber, rl.Hook, rl.Script, rl.CTA,
		); err != nil {
			return fmt.Errorf("insert reel %d: %w", rl.ReelNumber, err)
		}
	}
	return nil
}

func (r *CampaignRepositoryPG) Update(ctx context.Context, c *domain.Campaign) error {
	return execAffecting(ctx, r.sql, sqlinline.QUpdateCampaign,
		c.ID,
		c.Title,
		c.Objective,
		c.Audience,
		c.TargetMarket,
		c.ContentDialect,
		c.Language,
		c.Status,
		jsoncfg.MustMarshal(c.VisualPrefs),
	)
}

func (r *CampaignRepositoryPG) UpdatePost(ctx context.Context, p *domain.CampaignPost) error {
	return execAffecting(ctx, r.sql, sqlinline.QUpdateCampaignPost,
		p.ID, p.Title, p.CaptionAR, p.CaptionEN, p.HashtagsAR, p.HashtagsEN, p.CTA, p.DesignNotes, p.ImageURL,
	)
}

// GetByID loads the campaign with its posts, stories and reels.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.sql.QueryRow(ctx, sqlinline.QSelectCampaignByID, id))
	if err != nil {
		return nil, notFound(err)
	}

	rows, err := r.sql.Query(ctx, sqlinline.QSelectCampaignPosts, id)
	if err != nil {
		return nil, err
	}
	if c.Posts, err = collect(rows, scanCampaignPost); err != nil {
		return nil, err
	}

	rows, err = r.sql.Query(ctx, sqlinline.QSelectCampaignStories, id)
	if err != nil {
		return nil, err
	}
	if c.Stories, err = collect(rows, scanCampaignStory); err != nil {
		return nil, err
	}

	rows, err = r.sql.Query(ctx, sqlinline.QSelectCampaignReels, id)
	if err != nil {
		return nil, err
	}
	if c.Reels, err = collect(rows, scanCampaignReel); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepositoryPG) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.sql, sqlinline.QDeleteCampaign, id)
}

// List returns campaign headers only; children are loaded by GetByID.
func (r *CampaignRepositoryPG) List(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultCampaignListLimit
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListCampaignsByUser, filter.UserID, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCampaign)
}

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c     domain.Campaign
		prefs []byte
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.BrandID, &c.Title, &c.Objective, &c.Audience,
		&c.TargetMarket, &c.ContentDialect, &c.Language, &c.Status, &prefs, &c.CreatedAt); err != nil {
		return c, err
	}
	if err := jsoncfg.Unmarshal(prefs, &c.VisualPrefs); err != nil {
		return c, err
	}
	return c, nil
}

func scanCampaignPost(row pgx.Row) (domain.CampaignPost, error) {
	var p domain.CampaignPost
	err := row.Scan(&p.ID, &p.CampaignID, &p.PostNumber, &p.Title, &p.CaptionAR, &p.CaptionEN,
		&p.HashtagsAR, &p.HashtagsEN, &p.CTA, &p.DesignNotes, &p.ImageURL)
	return p, err
}

func scanCampaignStory(row pgx.Row) (domain.CampaignStory, error) {
	var s domain.CampaignStory
	err := row.Scan(&s.ID, &s.CampaignID, &s.StoryNumber, &s.Content, &s.InteractiveElement)
	return s, err
}

func scanCampaignReel(row pgx.Row) (domain.CampaignReel, error) {
	var rl domain.CampaignReel
	err := row.Scan(&rl.ID, &rl.CampaignID, &rl.ReelNumber, &rl.Hook, &rl.Script, &rl.CTA)
	return rl, err
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
