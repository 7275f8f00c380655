package router

import (
	"istorepro/internal/config"
	"istorepro/internal/handler"
	"istorepro/internal/infra"
	"istorepro/internal/middleware"
	"istorepro/internal/repository"
	"istorepro/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the long-lived objects built by the composition root.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	CEP     *infra.CEPClient
	Limiter *middleware.RateLimiter

	Vendas       service.VendaService
	Produtos     service.ProdutoService
	Clientes     service.ClienteService
	Fornecedores service.FornecedorService
	Metodos      service.MetodoPagamentoService
	Crediario    service.CrediarioService
	Recibos      repository.ReciboRepository
}

// New returns the configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// order matters
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Production(), cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware())
	}

	vendasH := handler.NewVendasHandler(d.Vendas, d.Recibos)
	produtosH := handler.NewProdutosHandler(d.Produtos)
	clientesH := handler.NewClientesHandler(d.Clientes)
	fornecedoresH := handler.NewFornecedoresHandler(d.Fornecedores)
	configH := handler.NewConfiguracoesHandler(d.Metodos)
	crediarioH := handler.NewCrediarioHandler(d.Crediario)

	if d.DB != nil && d.Redis != nil {
		var breaker *infra.CircuitBreaker
		if d.CEP != nil {
			breaker = d.CEP.Breaker()
		}
		r.GET("/health", handler.Health(d.DB, d.Redis, breaker))
	}

	v1 := r.Group("/v1", middleware.Actor())

	// ── Sale drafts ──────────────────────────────────────────────────────────
	rasc := v1.Group("/vendas/rascunhos")
	{
		rasc.POST("", vendasH.Iniciar)
		rasc.GET("/:id", vendasH.Obter)
		rasc.DELETE("/:id", vendasH.Cancelar)

		rasc.PUT("/:id/cliente", vendasH.DefinirCliente)
		rasc.PUT("/:id/vendedor", vendasH.DefinirVendedor)
		rasc.PUT("/:id/garantia", vendasH.DefinirGarantia)
		rasc.PUT("/:id/observacoes", vendasH.DefinirObservacoes)
		rasc.PUT("/:id/desconto", vendasH.DefinirDesconto)

		rasc.POST("/:id/solicitacao-item", vendasH.SolicitarItem)
		rasc.POST("/:id/solicitacao-item/confirmar", vendasH.ConfirmarItem)
		rasc.DELETE("/:id/solicitacao-item", vendasH.DescartarItem)
		rasc.PATCH("/:id/itens/:produtoId", vendasH.AtualizarItem)
		rasc.DELETE("/:id/itens/:produtoId", vendasH.RemoverItem)

		rasc.POST("/:id/solicitacao-pagamento", vendasH.SolicitarPagamento)
		rasc.DELETE("/:id/solicitacao-pagamento", vendasH.DescartarPagamento)
		rasc.POST("/:id/pagamentos/valor", vendasH.ConfirmarValor)
		rasc.POST("/:id/pagamentos/cartao/cotacao", vendasH.CotarCartao)
		rasc.POST("/:id/pagamentos/cartao", vendasH.ConfirmarCartao)
		rasc.POST("/:id/pagamentos/crediario/cotacao", vendasH.CotarCrediario)
		rasc.POST("/:id/pagamentos/crediario", vendasH.ConfirmarCrediario)
		rasc.POST("/:id/pagamentos/troca", vendasH.AdicionarTroca)
		rasc.DELETE("/:id/pagamentos/:pagamentoId", vendasH.RemoverPagamento)
		rasc.PATCH("/:id/limite-credito", vendasH.AtualizarLimiteCredito)

		rasc.POST("/:id/salvar", vendasH.Salvar)
	}

	// ── Saved sales ──────────────────────────────────────────────────────────
	v1.GET("/vendas", vendasH.Listar)
	v1.GET("/vendas/:id", vendasH.ObterVenda)
	v1.POST("/vendas/:id/edicao", vendasH.AbrirEdicao)
	v1.GET("/vendas/:id/recibo", vendasH.BaixarRecibo)

	// ── Catalog ──────────────────────────────────────────────────────────────
	prods := v1.Group("/produtos")
	{
		prods.POST("", produtosH.Criar)
		prods.GET("", produtosH.Listar)
		prods.GET("/codigo/:codigo", produtosH.ObterPorCodigo)
		prods.GET("/:id", produtosH.ObterPorID)
		prods.PUT("/:id", produtosH.Atualizar)
		prods.DELETE("/:id", produtosH.Desativar)
		prods.PATCH("/:id/estoque", produtosH.AjustarEstoque)
		prods.GET("/:id/movimentos", produtosH.Movimentos)
	}

	clientes := v1.Group("/clientes")
	{
		clientes.POST("", clientesH.Criar)
		clientes.GET("", clientesH.Listar)
		clientes.GET("/:id", clientesH.ObterPorID)
		clientes.PUT("/:id", clientesH.Atualizar)
		clientes.DELETE("/:id", clientesH.Desativar)
		clientes.PATCH("/:id/limite", clientesH.AtualizarLimite)
	}
	v1.GET("/cep/:cep", clientesH.BuscarCEP)

	forn := v1.Group("/fornecedores")
	{
		forn.POST("", fornecedoresH.Criar)
		forn.GET("", fornecedoresH.Listar)
		forn.GET("/:id", fornecedoresH.ObterPorID)
		forn.PUT("/:id", fornecedoresH.Atualizar)
		forn.DELETE("/:id", fornecedoresH.Desativar)
	}

	pedidos := v1.Group("/pedidos-compra")
	{
		pedidos.POST("", fornecedoresH.CriarPedido)
		pedidos.GET("", fornecedoresH.ListarPedidos)
		pedidos.GET("/:id", fornecedoresH.ObterPedido)
		pedidos.POST("/:id/receber", fornecedoresH.ReceberPedido)
		pedidos.POST("/:id/cancelar", fornecedoresH.CancelarPedido)
	}

	// ── Configuration ────────────────────────────────────────────────────────
	metodos := v1.Group("/metodos-pagamento")
	{
		metodos.GET("", configH.ListarMetodos)
		metodos.POST("", configH.CriarMetodo)
		metodos.PUT("/:id", configH.AtualizarMetodo)
		metodos.DELETE("/:id", configH.ExcluirMetodo)
	}

	termos := v1.Group("/termos-garantia")
	{
		termos.GET("", configH.ListarTermos)
		termos.POST("", configH.CriarTermo)
		termos.PUT("/:id", configH.AtualizarTermo)
	}

	// ── Crediário ────────────────────────────────────────────────────────────
	v1.GET("/crediario/parcelas", crediarioH.Listar)
	v1.POST("/crediario/parcelas/:id/pagamentos", crediarioH.Pagar)

	// Swagger UI only outside production
	if !cfg.Production() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
