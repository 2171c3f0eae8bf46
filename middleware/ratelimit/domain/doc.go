// Package domain define contratos e tipos de domínio para rate limit e concorrência.
//
// Este pacote não depende de net/http nem de implementações concretas.
// Dois modelos convivem aqui: o token bucket por chave (Limiter/LimiterStore),
// usado como proteção geral do site, e a janela fixa por chave
// (Window/WindowRecord/WindowStore), usada pelo formulário de contato.
package domain
