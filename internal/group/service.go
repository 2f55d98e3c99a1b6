// Package group implements the group lifecycle: creation, update, soft
// deletion and the assembled show page. The workflow wires the access
// gate, the geocoder, the cover pipeline, the notification fan-out and
// the activity log around a gorm-backed group record.
package group

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/commonshub/commonshub/internal/access"
	"github.com/commonshub/commonshub/internal/cover"
	"github.com/commonshub/commonshub/internal/db/controller/setting"
	"github.com/commonshub/commonshub/internal/db/models"
	"github.com/commonshub/commonshub/internal/feed"
	"github.com/commonshub/commonshub/internal/geocode"
	"github.com/commonshub/commonshub/internal/notify"
)

// Service runs the group lifecycle. All collaborators are injected; a
// nil geocoder means geocoding is disabled and addresses are stored
// without coordinates.
type Service struct {
	db       *gorm.DB
	geocoder geocode.Geocoder
	covers   *cover.Storage
	notifier notify.Notifier
	feed     *feed.Aggregator
	validate *validator.Validate
}

// NewService creates a Service on the given collaborators.
func NewService(db *gorm.DB, geocoder geocode.Geocoder, covers *cover.Storage, notifier notify.Notifier) *Service {
	return &Service{
		db:       db,
		geocoder: geocoder,
		covers:   covers,
		notifier: notifier,
		feed:     feed.NewAggregator(feed.NewGormStore(db)),
		validate: validator.New(),
	}
}

// Saved is the outcome of a create or update: the persisted group plus
// the advisory geocode signal for the flash message.
type Saved struct {
	Group  *models.Group
	Signal geocode.Signal
}

// Page is the assembled show-page view model.
type Page struct {
	Summary    feed.Summary
	Visibility access.Visibility
	Admins     []models.Membership
}

// Get loads a group with its memberships, tags and attributed user.
// Soft-deleted groups report ErrNotFound like missing ones.
func (s *Service) Get(ctx context.Context, id uint) (*models.Group, error) {
	var g models.Group

	err := s.db.WithContext(ctx).
		Preload("Memberships.User").
		Preload("Tags").
		Preload("User").
		First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load group")
	}

	return &g, nil
}

// Create builds and persists a new group for the viewer.
//
// The viewer needs the create capability (authenticated and verified).
// Validation failures abort before anything is written. Geocoding is
// attempted at most once and never blocks the save. After the base
// record exists the viewer becomes the founding admin, system
// administrators are notified when the corresponding setting is on, and
// a creation entry lands in the activity log. A cover derivation error
// is returned to the caller even though the base record is already
// saved; the group simply has no cover yet.
func (s *Service) Create(ctx context.Context, v access.Viewer, in Input) (*Saved, error) {
	if !access.Allows(v, nil, access.CapCreate) {
		return nil, ErrForbidden
	}

	if fields := check(s.validate, in); fields != nil {
		return nil, fields
	}

	owner := v.ID
	g := &models.Group{
		Name:      in.Name,
		Body:      in.Body,
		GroupType: models.GroupType(in.GroupType),
		IsPublic:  in.IsPublic,
		Address:   in.Address,
		UserID:    &owner,
	}

	signal := s.locate(ctx, g)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create group")
	}

	if in.Tags != nil {
		if err := s.retag(ctx, g, in.Tags); err != nil {
			return nil, err
		}
	}

	if len(in.Cover) > 0 {
		if err := s.storeCover(g.ID, in.Cover); err != nil {
			return nil, err
		}
	}

	if err := s.ensureFoundingAdmin(ctx, owner, g.ID); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, g, owner)
	s.record(ctx, g.ID, models.ActivityGroupCreated, owner)

	log.Info().Uint("group_id", g.ID).Str("name", g.Name).Uint64("user_id", owner).
		Msg("group created")

	return &Saved{Group: g, Signal: signal}, nil
}

// Update applies the submitted fields to an existing group.
//
// Name, body and the public flag always follow the form. The group type
// only changes when the viewer holds the change capability; otherwise
// the submitted value is ignored and the stored one kept, without an
// error. A changed address triggers one geocode attempt; a failed
// attempt clears the coordinates and the save proceeds. The acting
// editor becomes the attributed user.
func (s *Service) Update(ctx context.Context, v access.Viewer, g *models.Group, in Input) (*Saved, error) {
	if fields := check(s.validate, in); fields != nil {
		return nil, fields
	}

	g.Name = in.Name
	g.Body = in.Body
	g.IsPublic = in.IsPublic

	if access.Allows(v, g, access.CapChangeGroupType) {
		g.GroupType = models.GroupType(in.GroupType)
	}

	signal := geocode.SignalNone
	if in.Address != g.Address {
		g.Address = in.Address
		signal = s.locate(ctx, g)
	}

	editor := v.ID
	g.UserID = &editor

	// associations are managed explicitly below, gorm must not upsert
	// the preloaded ones as a side effect of the save
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(g).Error; err != nil {
		return nil, errors.Wrap(err, "failed to update group")
	}

	if in.Tags != nil {
		if err := s.retag(ctx, g, in.Tags); err != nil {
			return nil, err
		}
	}

	if len(in.Cover) > 0 {
		if err := s.storeCover(g.ID, in.Cover); err != nil {
			return nil, err
		}
	}

	s.record(ctx, g.ID, models.ActivityGroupUpdated, editor)

	return &Saved{Group: g, Signal: signal}, nil
}

// Delete soft-deletes the group. Only group admins may delete; a denial
// is an explicit ErrForbidden, never a silent no-op.
func (s *Service) Delete(ctx context.Context, v access.Viewer, g *models.Group) error {
	if !access.Allows(v, g, access.CapDelete) {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(g).Error; err != nil {
		return errors.Wrap(err, "failed to delete group")
	}

	s.record(ctx, g.ID, models.ActivityGroupDeleted, v.ID)

	log.Info().Uint("group_id", g.ID).Uint64("user_id", v.ID).Msg("group deleted")

	return nil
}

// Show resolves what the viewer may see, aggregates the permitted
// collections and returns the page. Denied slots stay NotShown; a slot
// whose fetch failed degrades without taking the page down.
func (s *Service) Show(ctx context.Context, v access.Viewer, g *models.Group) Page {
	vis := access.Resolve(v, g)

	return Page{
		Summary:    s.feed.Aggregate(ctx, g, vis),
		Visibility: vis,
		Admins:     g.Admins(),
	}
}

// locate runs the geocode policy against the group's current address:
// an empty address means no attempt and clears stale coordinates, a nil
// geocoder means the feature is off, and a failed or empty lookup
// clears the coordinates while letting the save proceed.
func (s *Service) locate(ctx context.Context, g *models.Group) geocode.Signal {
	if g.Address == "" {
		g.Latitude, g.Longitude = nil, nil
		return geocode.SignalNone
	}

	if s.geocoder == nil {
		g.Latitude, g.Longitude = nil, nil
		return geocode.SignalNone
	}

	pt, found, err := s.geocoder.Geocode(ctx, g.Address)
	if err != nil || !found {
		g.Latitude, g.Longitude = nil, nil

		log.Warn().Err(err).Str("address", g.Address).Msg("geocoding failed, saving without coordinates")

		return geocode.SignalFailed
	}

	g.Latitude, g.Longitude = &pt.Lat, &pt.Lon

	return geocode.SignalGeocoded
}

// retag replaces the group's tag set wholesale with the requested
// names. Names are deduplicated; tags are shared records, created on
// first use.
func (s *Service) retag(ctx context.Context, g *models.Group, names []string) error {
	seen := make(map[string]bool, len(names))
	tags := make([]models.Tag, 0, len(names))

	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}

		seen[name] = true

		var tag models.Tag
		if err := s.db.WithContext(ctx).Where("name = ?", name).
			FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return errors.Wrap(err, "failed to resolve tag")
		}

		tags = append(tags, tag)
	}

	if err := s.db.WithContext(ctx).Model(g).Association("Tags").Replace(tags); err != nil {
		return errors.Wrap(err, "failed to replace tags")
	}

	g.Tags = tags

	return nil
}

// storeCover derives the display images from the upload and stores them
// under the group's path, replacing any previous pair.
func (s *Service) storeCover(groupID uint, raw []byte) error {
	coverImg, thumb, err := cover.Derive(raw)
	if err != nil {
		return err
	}

	return s.covers.Save(groupID, coverImg, thumb)
}

// ensureFoundingAdmin makes the creator an admin member with the
// default notification interval. FirstOrCreate keeps the operation
// idempotent should the membership already exist.
func (s *Service) ensureFoundingAdmin(ctx context.Context, userID uint64, groupID uint) error {
	membership := models.Membership{
		UserID:               userID,
		GroupID:              groupID,
		Role:                 models.RoleAdmin,
		NotificationInterval: models.DefaultNotificationInterval,
	}

	err := s.db.WithContext(ctx).
		Where(models.Membership{UserID: userID, GroupID: groupID}).
		Attrs(membership).
		FirstOrCreate(&membership).Error
	if err != nil {
		return errors.Wrap(err, "failed to create founding membership")
	}

	return nil
}

// notifyAdmins fans the creation event out to every system
// administrator when the notify_admins_on_group_create setting is on.
// Delivery failures are logged per recipient and never affect the
// creation itself.
func (s *Service) notifyAdmins(ctx context.Context, g *models.Group, actorID uint64) {
	enabled, err := setting.GetBool(s.db, models.SettingNotifyAdminsOnGroupCreate)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read admin notification setting")
		return
	}

	if !enabled || s.notifier == nil {
		return
	}

	var admins []models.User
	if err := s.db.WithContext(ctx).Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Warn().Err(err).Msg("failed to list system administrators")
		return
	}

	recipients := make([]uint64, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.ID)
	}

	notify.FanOut(ctx, s.notifier, recipients, notify.NewEvent(notify.KindGroupCreated, g.ID, g.Name, actorID))
}

// record appends an activity log entry. The log is best effort
// bookkeeping; a write failure is logged, not surfaced.
func (s *Service) record(ctx context.Context, groupID uint, kind string, userID uint64) {
	activity := models.Activity{
		UID:     uuid.NewString(),
		Kind:    kind,
		GroupID: groupID,
		UserID:  &userID,
	}

	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		log.Warn().Err(err).Uint("group_id", groupID).Str("kind", kind).
			Msg("failed to record activity")
	}
}
