package routes

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"eventmanager/middlewares"
	"eventmanager/models"
	"eventmanager/views"
)

// Flash messages shown after a successful write.
const (
	msgEventAdded   = "Event Added"
	msgEventUpdated = "Event Updated"
	msgEventRemoved = "Event Removed"
)

type deps struct {
	events *models.EventService
	logger *logrus.Entry
}

// NewServer builds a gin engine with request logging, panic recovery,
// sessions, the page templates and the static assets.
func NewServer(logger *logrus.Entry, session middlewares.SessionConfig) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	server := gin.New()
	server.Use(middlewares.Logger(logger), gin.Recovery(), middlewares.Sessions(session))
	server.SetHTMLTemplate(tmpl)
	server.StaticFS("/public", views.Public())
	return server, nil
}

// RegisterRoutes mounts the pages. writeGuards run in front of the routes
// that modify events.
func RegisterRoutes(server *gin.Engine, events *models.EventService, logger *logrus.Entry, writeGuards ...gin.HandlerFunc) {
	d := &deps{events: events, logger: logger}

	server.GET("/", d.index)

	ev := server.Group("/events")
	ev.GET("", d.getEvents)
	ev.GET("/add", d.addEventForm)
	ev.GET("/edit/:id", d.editEventForm)

	writes := ev.Group("", writeGuards...)
	writes.POST("", d.createEvent)
	writes.PUT("/:id", d.updateEvent)
	writes.DELETE("/:id", d.deleteEvent)

	server.NoRoute(d.notFound)
}

// GET /
func (d *deps) index(c *gin.Context) {
	d.render(c, http.StatusOK, views.PageIndex, gin.H{"Title": "Welcome"})
}

// GET /events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.ListEvents(c.Request.Context())
	if err != nil {
		d.fail(c, err)
		return
	}
	d.render(c, http.StatusOK, views.PageEvents, gin.H{
		"Events": views.NewEventViews(events, time.Local),
	})
}

// GET /events/add
func (d *deps) addEventForm(c *gin.Context) {
	d.render(c, http.StatusOK, views.PageEventAdd, gin.H{"Form": views.EventForm{}})
}

// GET /events/edit/:id
func (d *deps) editEventForm(c *gin.Context) {
	event, err := d.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		d.fail(c, err)
		return
	}
	d.render(c, http.StatusOK, views.PageEventEdit, gin.H{
		"Form": views.NewEventForm(event, time.Local),
	})
}

// POST /events
func (d *deps) createEvent(c *gin.Context) {
	in, ok := d.bindInput(c)
	if !ok {
		return
	}

	_, err := d.events.CreateEvent(c.Request.Context(), in)
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		d.render(c, http.StatusOK, views.PageEventAdd, gin.H{
			"Errors": verr.Messages,
			"Form":   views.FormFromInput("", in),
		})
		return
	}
	if err != nil {
		d.fail(c, err)
		return
	}
	d.redirectToList(c, msgEventAdded)
}

// PUT /events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id := c.Param("id")
	in, ok := d.bindInput(c)
	if !ok {
		return
	}

	_, err := d.events.UpdateEvent(c.Request.Context(), id, in)
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		d.render(c, http.StatusOK, views.PageEventEdit, gin.H{
			"Errors": verr.Messages,
			"Form":   views.FormFromInput(id, in),
		})
		return
	}
	if err != nil {
		d.fail(c, err)
		return
	}
	d.redirectToList(c, msgEventUpdated)
}

// DELETE /events/:id
func (d *deps) deleteEvent(c *gin.Context) {
	if err := d.events.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		d.fail(c, err)
		return
	}
	d.redirectToList(c, msgEventRemoved)
}

func (d *deps) notFound(c *gin.Context) {
	d.render(c, http.StatusNotFound, views.PageError, gin.H{
		"Status":  http.StatusNotFound,
		"Message": "Page not found",
	})
}

// bindInput reads a form or JSON body. An empty JSON body counts as an
// empty input so it reaches validation. Malformed bodies get a 400 page.
func (d *deps) bindInput(c *gin.Context) (models.EventInput, bool) {
	var in models.EventInput
	if err := c.ShouldBind(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return models.EventInput{}, true
		}
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		d.render(c, http.StatusBadRequest, views.PageError, gin.H{
			"Status":  http.StatusBadRequest,
			"Message": "Could not parse request data.",
		})
		return in, false
	}
	return in, true
}

func (d *deps) redirectToList(c *gin.Context, msg string) {
	if err := middlewares.AddFlash(c, middlewares.FlashSuccess, msg); err != nil {
		d.logger.WithError(err).Warn("Could not save flash message")
	}
	c.Redirect(http.StatusFound, "/events")
}

// fail renders the error page for err. Unknown events are a 404, anything
// else coming from the store is a 500.
func (d *deps) fail(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Something went wrong. Try again later."
	if errors.Is(err, models.ErrEventNotFound) {
		status, msg = http.StatusNotFound, "Event not found"
	}
	_ = c.Error(err)
	d.render(c, status, views.PageError, gin.H{"Status": status, "Message": msg})
}

// render adds the pending flash messages to data before executing the page.
func (d *deps) render(c *gin.Context, status int, page string, data gin.H) {
	for key, category := range map[string]string{
		"SuccessMsg": middlewares.FlashSuccess,
		"ErrorMsg":   middlewares.FlashError,
	} {
		msgs, err := middlewares.Flashes(c, category)
		if err != nil {
			d.logger.WithError(err).Warn("Could not clear flash messages")
		}
		data[key] = msgs
	}
	c.HTML(status, page, data)
}
