package tui

import (
	"context"

	"github.com/Levipasha/retrend/internal/api"
	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/auth"
	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/config"
	"github.com/Levipasha/retrend/internal/geocode"
	"github.com/Levipasha/retrend/internal/geolocation"
	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/Levipasha/retrend/internal/storage"
	"github.com/Levipasha/retrend/internal/tui/components"
	"github.com/Levipasha/retrend/internal/tui/screens"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Screen represents the current screen in the TUI.
type Screen int

const (
	ScreenListings Screen = iota
	ScreenLogin
	ScreenWishlist
	ScreenCategories
	ScreenSell
	ScreenAdSuccess
	ScreenAccount
)

// Deps are the services the TUI runs on.
type Deps struct {
	Config   *config.Config
	Client   *api.Client
	Geocoder geocode.Geocoder
	Locator  geolocation.Locator
	Store    storage.Store
	Uploader assets.Uploader
	Catalog  *catalog.Catalog
	Logger   logrus.FieldLogger
}

// App is the main application model.
type App struct {
	deps     Deps
	screen   Screen
	width    int
	height   int
	ready    bool
	client   *api.Client
	sessions *auth.SessionStore
	session  *models.Session
	logger   logrus.FieldLogger

	// screen to open once login succeeds
	afterLogin string

	navbar components.NavbarModel

	// Screen models
	loginModel      screens.LoginModel
	listingsModel   screens.ListingsModel
	wishlistModel   screens.WishlistModel
	categoriesModel screens.CategoriesModel
	sellModel       screens.SellFormModel
	adSuccessModel  screens.AdSuccessModel
	accountModel    screens.AccountModel
}

// NewApp creates a new application instance.
func NewApp(deps Deps) *App {
	logger := logging.OrDiscard(deps.Logger)
	if deps.Config == nil {
		deps.Config = &config.Config{DefaultLocation: "India"}
	}
	if deps.Store == nil {
		deps.Store = storage.NewMemoryStore()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	client := deps.Client
	if client == nil {
		client = api.NewClient("", api.WithBaseURL(deps.Config.APIBaseURL), api.WithLogger(logger))
	}

	locations := storage.NewLocationStore(deps.Store, deps.Config.DefaultLocation)
	picker := components.NewLocationPickerModel(deps.Geocoder, deps.Locator, locations, logger)

	app := &App{
		deps:     deps,
		screen:   ScreenListings,
		client:   client,
		sessions: auth.NewSessionStore(deps.Store),
		logger:   logger.WithField("component", "app"),
		navbar:   components.NewNavbarModel(picker, logger),
	}

	// Check for an existing session
	session, err := app.sessions.Get()
	switch {
	case err != nil:
		app.logger.WithError(err).Debug("no stored session")
	case auth.TokenExpired(session.Token):
		app.logger.Info("stored session expired")
	default:
		app.signIn(session)
	}

	app.listingsModel = screens.NewListingsModel(app.client, app.navbar.Location())
	return app
}

// signIn switches the client and navbar to session. The navbar's wishlist
// fetch is left to Init or the caller.
func (a *App) signIn(session *models.Session) tea.Cmd {
	a.session = session
	a.client = a.client.WithToken(session.Token)
	var cmd tea.Cmd
	a.navbar, cmd = a.navbar.SetAuth(true, session.Name, a.client)
	return cmd
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.navbar.Init(), a.listingsModel.Init())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.navbar, _ = a.navbar.Update(msg)
		return a, a.forwardToCurrentScreen(a.screenSize())

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			var cmd tea.Cmd
			a.navbar, cmd = a.navbar.Teardown()
			return a, tea.Sequence(cmd, tea.Quit)
		}
		if a.navbar.Captures(msg) {
			var cmd tea.Cmd
			a.navbar, cmd = a.navbar.Update(msg)
			return a, cmd
		}
		return a, a.forwardToCurrentScreen(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.navbar, cmd = a.navbar.Update(msg)
		return a, cmd

	case components.ActionMsg:
		return a.handleAction(msg.Action)

	case components.LocationChangedMsg:
		var navCmd, listCmd tea.Cmd
		a.navbar, navCmd = a.navbar.Update(msg)
		a.listingsModel, listCmd = a.listingsModel.SetLocation(a.navbar.Location())
		return a, tea.Batch(navCmd, listCmd)

	case components.SearchChangedMsg:
		a.listingsModel = a.listingsModel.SetQuery(msg.Query)
		if a.screen != ScreenListings {
			return a.handleNavigation(screens.ScreenListings, nil)
		}
		return a, nil

	case screens.LoginSuccessMsg:
		session := msg.Session
		cmd := a.signIn(&session)
		next := a.afterLogin
		a.afterLogin = ""
		if next == "" {
			next = screens.ScreenListings
		}
		model, navCmd := a.handleNavigation(next, nil)
		return model, tea.Batch(cmd, navCmd)

	case screens.NavigateMsg:
		return a.handleNavigation(msg.Screen, msg.Data)
	}

	// Everything else goes to both the navbar and the screen
	var navCmd tea.Cmd
	a.navbar, navCmd = a.navbar.Update(msg)
	return a, tea.Batch(navCmd, a.forwardToCurrentScreen(msg))
}

func (a *App) handleAction(action components.Action) (tea.Model, tea.Cmd) {
	switch action {
	case components.ActionHome:
		return a.handleNavigation(screens.ScreenListings, nil)
	case components.ActionSell:
		return a.requireAuth(screens.ScreenCategories)
	case components.ActionWishlist:
		return a.requireAuth(screens.ScreenWishlist)
	case components.ActionLogin:
		return a.handleNavigation(screens.ScreenLogin, nil)
	case components.ActionAccount:
		return a.requireAuth(screens.ScreenAccount)
	case components.ActionLogout:
		return a.logout()
	}
	return a, nil
}

// requireAuth opens screen, or the login screen first when signed out.
func (a *App) requireAuth(screen string) (tea.Model, tea.Cmd) {
	if a.session == nil {
		a.afterLogin = screen
		return a.handleNavigation(screens.ScreenLogin, nil)
	}
	return a.handleNavigation(screen, nil)
}

func (a *App) logout() (tea.Model, tea.Cmd) {
	if err := a.sessions.Clear(); err != nil {
		a.logger.WithError(err).Warn("failed to clear session")
	}
	a.session = nil
	a.client = a.client.WithToken("")
	a.navbar, _ = a.navbar.SetAuth(false, "", nil)

	switch a.screen {
	case ScreenWishlist, ScreenCategories, ScreenSell, ScreenAccount:
		return a.handleNavigation(screens.ScreenListings, nil)
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.loginModel.View()
	case ScreenListings:
		content = a.listingsModel.View()
	case ScreenWishlist:
		content = a.wishlistModel.View()
	case ScreenCategories:
		content = a.categoriesModel.View()
	case ScreenSell:
		content = a.sellModel.View()
	case ScreenAdSuccess:
		content = a.adSuccessModel.View()
	case ScreenAccount:
		content = a.accountModel.View()
	default:
		content = "Unknown screen"
	}

	return a.navbar.View() + "\n" + content + "\n" + a.navbar.HelpView()
}

// screenSize is the area between the navbar and the help footer.
func (a *App) screenSize() tea.WindowSizeMsg {
	h := a.height - a.navbar.Height() - 2
	if h < 0 {
		h = 0
	}
	return tea.WindowSizeMsg{Width: a.width, Height: h}
}

func (a *App) forwardToCurrentScreen(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.screen {
	case ScreenLogin:
		a.loginModel, cmd = a.loginModel.Update(msg)
	case ScreenListings:
		a.listingsModel, cmd = a.listingsModel.Update(msg)
	case ScreenWishlist:
		a.wishlistModel, cmd = a.wishlistModel.Update(msg)
	case ScreenCategories:
		a.categoriesModel, cmd = a.categoriesModel.Update(msg)
	case ScreenSell:
		a.sellModel, cmd = a.sellModel.Update(msg)
	case ScreenAdSuccess:
		a.adSuccessModel, cmd = a.adSuccessModel.Update(msg)
	case ScreenAccount:
		a.accountModel, cmd = a.accountModel.Update(msg)
	}

	return cmd
}

func (a *App) checkSession(ctx context.Context, token string) error {
	return a.client.WithToken(token).CheckSession(ctx)
}

func (a *App) userName() string {
	if a.session == nil {
		return ""
	}
	return a.session.Name
}

func (a *App) handleNavigation(screen string, data interface{}) (tea.Model, tea.Cmd) {
	var initCmd tea.Cmd

	switch screen {
	case screens.ScreenLogin:
		a.screen = ScreenLogin
		a.loginModel = screens.NewLoginModel(a.checkSession, a.sessions)
		initCmd = a.loginModel.Init()
	case screens.ScreenListings:
		a.screen = ScreenListings
	case screens.ScreenWishlist:
		a.screen = ScreenWishlist
		a.wishlistModel = screens.NewWishlistModel(a.client)
		initCmd = a.wishlistModel.Init()
	case screens.ScreenCategories:
		a.screen = ScreenCategories
		a.categoriesModel = screens.NewCategoriesModel(a.deps.Catalog)
		initCmd = a.categoriesModel.Init()
	case screens.ScreenSell:
		target, _ := data.(screens.SellTarget)
		submitter := sell.NewSubmitter(a.client, a.deps.Uploader, a.deps.Logger)
		a.screen = ScreenSell
		a.sellModel = screens.NewSellFormModel(a.deps.Catalog, target, submitter, a.navbar.Location(), a.userName(), a.deps.Logger)
		initCmd = a.sellModel.Init()
	case screens.ScreenAdSuccess:
		product, _ := data.(*models.Product)
		a.screen = ScreenAdSuccess
		a.adSuccessModel = screens.NewAdSuccessModel(product)
		initCmd = a.adSuccessModel.Init()
	case screens.ScreenAccount:
		var session models.Session
		if a.session != nil {
			session = *a.session
		}
		_, persistent := a.deps.Store.(*storage.KeyringStore)
		a.screen = ScreenAccount
		a.accountModel = screens.NewAccountModel(session, a.navbar.Location(), persistent)
		initCmd = a.accountModel.Init()
	default:
		a.logger.WithField("screen", screen).Warn("unknown screen")
		return a, nil
	}

	// Forward window size to new screen
	sizeCmd := a.forwardToCurrentScreen(a.screenSize())

	return a, tea.Batch(initCmd, sizeCmd)
}
