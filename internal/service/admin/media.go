package admin

import (
	"context"
	"slices"

	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/service/media"
)

// MediaOp is one widget operation (add files, add a link, remove an item)
type MediaOp func(ctx context.Context, widget *media.Widget) error

// MediaResult reports a media edit. OpErr is the widget's failure; SaveErr
// is the failure saving the resulting list. Either may be set while the
// other is nil.
type MediaResult struct {
	Items   []models.MediaItem
	Warning string
	OpErr   error
	SaveErr error
}

// Err returns the first failure of the edit
func (r MediaResult) Err() error {
	if r.OpErr != nil {
		return r.OpErr
	}
	return r.SaveErr
}

// EditMedia opens sub-item id in the editor, runs op on a widget over its
// media and saves whatever the widget ends up holding, even after a batch
// that failed part way. The returned error covers only the steps before op.
func (c *Controller) EditMedia(ctx context.Context, storage media.Storage, folder, id string, op MediaOp) (MediaResult, error) {
	if err := c.EnsureLoaded(ctx); err != nil {
		return MediaResult{}, err
	}

	item, err := c.LookupSubItem(ctx, id)
	if err != nil {
		return MediaResult{}, err
	}

	ed := c.Editor()
	if err := ed.OpenEdit(SubItemEntity(&item)); err != nil {
		return MediaResult{}, err
	}

	widget := media.NewWidget(storage, item.MediaItems, media.WidgetConfig{
		Folder: folder,
		OnChange: func(items []models.MediaItem) {
			// only media_items changes; urls/types are derived on submit
			_ = ed.SetMediaItems(items)
		},
	}, c.logger.With("sub_item_id", id))

	res := MediaResult{OpErr: op(ctx, widget)}

	if slices.Equal(item.MediaItems, widget.Items()) {
		ed.Close()
	} else {
		res.SaveErr = ed.Submit(ctx)
		if res.SaveErr != nil {
			c.logger.Warn("saving media list failed", "sub_item_id", id, "error", res.SaveErr)
		}
	}

	res.Items = widget.Items()
	res.Warning = widget.Warning()
	return res, nil
}
