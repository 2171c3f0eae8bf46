// Package application contém os casos de uso (regras de aplicação) de rate limit
// e limite de concorrência.
//
// Ele depende apenas do pacote domain e não conhece net/http.
//
//   - Service.Decide(key): token bucket global do site (allow/deny + retry-after)
//   - WindowService.Allow(ctx, key): janela fixa do formulário de contato
//   - ConcurrencyService.Acquire(ctx): vagas de requisições simultâneas
package application
