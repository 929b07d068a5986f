package controller

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/serverutils"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/render"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Page(ctx *fiber.Ctx) error
	SubmitForm(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
	renderer      *render.Renderer
}

func NewSearchController(searchService service.ISearchService, renderer *render.Renderer) ISearchController {
	return &searchController{
		searchService: searchService,
		renderer:      renderer,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Page)
	r.Post("/", c.SubmitForm)
	r.Post("/search", c.Search)
}

// Page serves the empty search form.
func (c *searchController) Page(ctx *fiber.Ctx) error {
	return c.renderPage(ctx, render.PageData{Mode: string(dto.ModeTicketRouting)})
}

// SubmitForm handles the browser flow. Handled failures come back as an
// error block inside the page rather than a bare JSON body.
func (c *searchController) SubmitForm(ctx *fiber.Ctx) error {
	ticketId := strings.TrimSpace(ctx.FormValue("ticket_id"))
	mode := ctx.FormValue("mode", string(dto.ModeTicketRouting))

	data := render.PageData{
		TicketId: ticketId,
		Mode:     mode,
	}

	req := &dto.SearchRequest{TicketId: ticketId, Mode: dto.SearchMode(mode)}
	if err := serverutils.ValidateRequest(req); err != nil {
		data.Warning = "Ticket ID must match IR0000000 or SR0000000"
		return c.renderPage(ctx, data)
	}

	started := time.Now()
	result, err := c.searchService.Search(ctx.Context(), req)
	data.ElapsedSeconds = fmt.Sprintf("%.1f", time.Since(started).Seconds())
	data.HasResult = true

	if err != nil {
		fragment, renderErr := c.renderer.Error(errorMessage(err))
		if renderErr != nil {
			return renderErr
		}
		data.Results = fragment
		return c.renderPage(ctx, data)
	}

	fragment, err := c.renderResult(req.Mode, result)
	if err != nil {
		return err
	}
	data.Results = fragment
	return c.renderPage(ctx, data)
}

// Search is the JSON wire surface. The response body is the bare
// mode-specific payload, or {"error": message} on handled failure.
func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.TicketId = strings.TrimSpace(req.TicketId)

	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	result, err := c.searchService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

func (c *searchController) renderResult(mode dto.SearchMode, result interface{}) (template.HTML, error) {
	switch res := result.(type) {
	case *dto.TicketRoutingResponse:
		return c.renderer.TicketRouting(res)
	case *dto.FindSimilarResponse:
		return c.renderer.FindSimilar(res)
	case *dto.JudgeTicketResponse:
		return c.renderer.JudgeTicket(res)
	default:
		return "", fmt.Errorf("no renderer for mode %s", mode)
	}
}

func (c *searchController) renderPage(ctx *fiber.Ctx, data render.PageData) error {
	html, err := c.renderer.Page(data)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}

// errorMessage keeps handled failure text and hides internals of
// anything unexpected.
func errorMessage(err error) string {
	var appErr *serverutils.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Search failed. Please try again."
}
