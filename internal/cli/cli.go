package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Talonmortem/SHM/internal/config"
	"github.com/Talonmortem/SHM/internal/orders"
	"github.com/Talonmortem/SHM/internal/session"
	"github.com/Talonmortem/SHM/internal/warehouse"

	"go.uber.org/zap"
)

type Runner struct {
	options Options
	logger  *zap.Logger
	session *session.Session
}

func NewRunner(cfg config.Config, logger *zap.Logger, sess *session.Session) *Runner {
	logger = logger.Named("cli")
	opts := Options{
		APIBaseURL: cfg.APIBaseURL,
		APIToken:   cfg.APIToken,
		Username:   cfg.Username,
		Timeout:    cfg.Timeout,
		LogFile:    cfg.LogFile,
		Debug:      cfg.Debug,
	}

	return &Runner{
		options: opts,
		logger:  logger,
		session: sess,
	}
}

func (r *Runner) Execute() error {
	return runCLI(&r.options, r.logger)
}

func runCLI(opts *Options, logger *zap.Logger) error {
	var timeoutSeconds int

	fs := flag.NewFlagSet("shm-console", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [command]\n", fs.Name())
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.APIBaseURL, "api-base-url", opts.APIBaseURL, "SHM API base URL (API_BASE_URL)")
	fs.StringVar(&opts.APIToken, "token", opts.APIToken, "SHM API token (API_TOKEN)")
	fs.StringVar(&opts.Username, "username", opts.Username, "Acting username (USERNAME)")
	fs.BoolVar(&opts.JSON, "json", false, "Output JSON format")
	fs.BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug logging")
	fs.StringVar(&opts.LogFile, "log-file", opts.LogFile, "Log file path")
	fs.IntVar(&timeoutSeconds, "timeout", int(opts.Timeout.Seconds()), "Timeout in seconds")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			fs.Usage()
			return nil
		}
		return err
	}

	if timeoutSeconds > 0 {
		opts.Timeout = time.Duration(timeoutSeconds) * time.Second
	}

	if args := fs.Args(); len(args) > 0 {
		opts.Command = strings.TrimSpace(strings.Join(args, " "))
	}

	sess := newSessionFromOptions(opts, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if opts.Command == "" {
		return runREPL(ctx, opts, logger, sess)
	}
	return handleCommand(ctx, opts, logger, sess, opts.Command)
}

// newSessionFromOptions rebuilds the client so flag overrides win over the
// environment.
func newSessionFromOptions(opts *Options, logger *zap.Logger) *session.Session {
	cfg := config.Config{
		APIBaseURL: opts.APIBaseURL,
		APIToken:   opts.APIToken,
		Username:   opts.Username,
		Timeout:    opts.Timeout,
	}
	return session.New(warehouse.NewClient(cfg, logger), logger)
}

func runREPL(ctx context.Context, opts *Options, logger *zap.Logger, sess *session.Session) error {
	reader := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stdout, "SHM console (type 'help' for commands, 'exit' to quit)")

	if err := sess.Refresh(ctx); err != nil {
		fmt.Fprintf(os.Stdout, "Ошибка загрузки: %s\n", friendlyError(err))
	} else {
		fmt.Fprintf(os.Stdout, "Загружено: товаров %d, артикулов %d, заказов %d, отправок %d\n",
			len(sess.Products), len(sess.Articles), len(sess.Orders), len(sess.Shipments))
	}

	for {
		fmt.Fprint(os.Stdout, "> ")
		if !reader.Scan() {
			return reader.Err()
		}

		line := strings.TrimSpace(reader.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "help":
			printHelp()
			continue
		case "exit", "quit":
			return nil
		}

		if err := handleCommand(ctx, opts, logger, sess, line); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(os.Stdout, "Ошибка: %s\n", friendlyError(err))
		}
	}
}

func printHelp() {
	fmt.Fprintln(os.Stdout, `Команды:
  products                  список товаров
  articles                  список артикулов
  orders                    список заказов
  order <id>                заказ подробно
  order drop <id> <товар>   убрать позицию из заказа и сохранить
  clients                   список клиентов
  shipments                 список отправок
  notes <дата>              заметки на день (YYYY-MM-DD)
  note add <дата> <текст>   добавить заметку
  note del <id>             удалить заметку
  payments [метод от до]    журнал оплат
  methods                   способы оплаты
  balance                   остатки по артикулам
  name                      предложить имя товара
  refresh                   перечитать данные
  exit                      выход`)
}

func handleCommand(ctx context.Context, opts *Options, logger *zap.Logger, sess *session.Session, line string) error {
	fields := strings.Fields(line)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	logger.Info("command received",
		zap.String("command", command),
		zap.Strings("args", args),
		zap.Bool("json", opts.JSON),
	)

	if strings.TrimSpace(opts.APIToken) == "" {
		return warehouse.ErrMissingToken
	}

	switch command {
	case "refresh":
		if err := sess.Refresh(ctx); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Загружено: товаров %d, артикулов %d, заказов %d, отправок %d\n",
			len(sess.Products), len(sess.Articles), len(sess.Orders), len(sess.Shipments))
		return nil
	case "products":
		if err := refreshIfEmpty(ctx, sess); err != nil {
			return err
		}
		return writeProducts(opts, sess.Products)
	case "articles":
		if err := refreshIfEmpty(ctx, sess); err != nil {
			return err
		}
		return writeArticles(opts, sess.Articles)
	case "orders":
		if err := refreshIfEmpty(ctx, sess); err != nil {
			return err
		}
		return writeOrders(opts, sess.Orders)
	case "order":
		if len(args) >= 1 && strings.ToLower(args[0]) == "drop" {
			return handleOrderDrop(ctx, opts, sess, args[1:])
		}
		if len(args) != 1 {
			return errors.New("usage: order <id> | order drop <id> <product-id>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad order id %q", args[0])
		}
		if err := refreshIfEmpty(ctx, sess); err != nil {
			return err
		}
		for _, o := range sess.Orders {
			if o.ID == id {
				return writeOrderDetail(opts, o)
			}
		}
		return session.ErrUnknownOrder
	case "clients":
		if err := refreshIfEmpty(ctx, sess); err != nil {
			return err
		}
		return writeClients(opts, sess.Clients)
	case "shipments":
		if err := refreshIfEmpty(ctx, sess); err != nil {
			return err
		}
		return writeShipments(opts, sess.Shipments)
	case "notes":
		if len(args) != 1 {
			return errors.New("usage: notes <YYYY-MM-DD>")
		}
		notes, err := sess.DayNotes(ctx, args[0])
		if err != nil {
			return err
		}
		return writeNotes(opts, notes)
	case "note":
		return handleNote(ctx, opts, sess, args)
	case "payments":
		var method, from, to string
		if len(args) > 0 {
			method = args[0]
		}
		if len(args) > 1 {
			from = args[1]
		}
		if len(args) > 2 {
			to = args[2]
		}
		payments, err := sess.Payments(ctx, method, from, to)
		if err != nil {
			return err
		}
		return writePayments(opts, payments)
	case "methods":
		if err := refreshIfEmpty(ctx, sess); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Способы оплаты: %s\n", strings.Join(sess.PaymentMethods, ", "))
		return nil
	case "balance":
		rows, err := sess.Balance(ctx)
		if err != nil {
			return err
		}
		return writeBalance(opts, rows)
	case "name":
		name := sess.SuggestedName(ctx)
		if name == "" {
			fmt.Fprintln(os.Stdout, "Имя недоступно.")
		} else {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q, try 'help'", command)
	}
}

// handleOrderDrop reopens a persisted order as a draft, marks one product for
// removal, and commits. Original members go through the pending-removal path.
func handleOrderDrop(ctx context.Context, opts *Options, sess *session.Session, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: order drop <id> <product-id>")
	}
	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad order id %q", args[0])
	}
	productID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad product id %q", args[1])
	}
	if err := refreshIfEmpty(ctx, sess); err != nil {
		return err
	}

	for _, o := range sess.Orders {
		if o.ID != orderID {
			continue
		}
		draft := orders.DraftFromOrder(o)
		draft.Composition.Remove(productID)
		committed, err := sess.CommitOrder(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Заказ [%d] сохранён, позиций %d\n", committed.ID, len(committed.Components))
		return writeOrderDetail(opts, committed)
	}
	return session.ErrUnknownOrder
}

func handleNote(ctx context.Context, opts *Options, sess *session.Session, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: note add <YYYY-MM-DD> <текст> | note del <id>")
	}
	switch strings.ToLower(args[0]) {
	case "add":
		if len(args) < 3 {
			return errors.New("usage: note add <YYYY-MM-DD> <текст>")
		}
		notes, err := sess.SaveNote(ctx, warehouse.ShipmentNote{
			ShipDate: args[1],
			Note:     strings.Join(args[2:], " "),
		})
		if err != nil {
			return err
		}
		return writeNotes(opts, notes)
	case "del":
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad note id %q", args[1])
		}
		if err := sess.DeleteNote(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Заметка удалена.")
		return nil
	default:
		return fmt.Errorf("unknown note action %q", args[0])
	}
}

// refreshIfEmpty lazily loads the collections for one-shot invocations where
// the REPL's initial refresh never ran.
func refreshIfEmpty(ctx context.Context, sess *session.Session) error {
	if sess.Products != nil || sess.Orders != nil {
		return nil
	}
	return sess.Refresh(ctx)
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, warehouse.ErrMissingToken):
		return "Нет доступа: не задан токен (API_TOKEN или --token)."
	case errors.Is(err, warehouse.ErrMissingUsername):
		return "Не задано имя пользователя (USERNAME или --username)."
	case errors.Is(err, warehouse.ErrUnauthorized):
		return "Нет доступа: неверный токен или недостаточно прав."
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
}
